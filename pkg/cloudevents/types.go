package cloudevents

import (
	"time"
)

// EventType constants for DCMS domain events
const (
	// Manifest events
	ManifestBuilt       = "dcms.manifest.built"
	ManifestBuildFailed = "dcms.manifest.build-failed"

	// Center events
	CenterRegistered = "dcms.center.registered"
)

// Source constants for event sources
const (
	SourceManifest = "/dcms/manifest-service"
)

// DCMSCloudEvent represents a CloudEvents v1.0 compliant event for DCMS
type DCMSCloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data"`

	// DCMS-specific extensions
	CorrelationID string `json:"dcmscorrelationid,omitempty"`
	CenterName    string `json:"dcmscentername,omitempty"`
}

// ManifestBuiltData represents the data payload for ManifestBuilt event
type ManifestBuiltData struct {
	ManifestID       string    `json:"manifestId"`
	CenterName       string    `json:"centerName"`
	CenterType       string    `json:"centerType"`
	InputRows        int       `json:"inputRows"`
	OutputRows       int       `json:"outputRows"`
	BoxedRows        int       `json:"boxedRows"`
	ConsolidatedRows int       `json:"consolidatedRows"`
	DroppedRows      int       `json:"droppedRows"`
	BuiltAt          time.Time `json:"builtAt"`
}

// ManifestBuildFailedData represents the data payload for ManifestBuildFailed event
type ManifestBuildFailedData struct {
	ManifestID string    `json:"manifestId"`
	CenterName string    `json:"centerName"`
	Reason     string    `json:"reason"`
	FailedAt   time.Time `json:"failedAt"`
}
