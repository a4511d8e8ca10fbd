package domain

import "time"

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// ManifestBuiltEvent is published when a manifest build completes
type ManifestBuiltEvent struct {
	ManifestID   string    `json:"manifestId"`
	CenterName   string    `json:"centerName"`
	CenterType   string    `json:"centerType"`
	InputRows    int       `json:"inputRows"`
	OutputRows   int       `json:"outputRows"`
	Consolidated int       `json:"consolidated"`
	BuiltAt      time.Time `json:"builtAt"`
}

func (e *ManifestBuiltEvent) EventType() string     { return "dcms.manifest.built" }
func (e *ManifestBuiltEvent) OccurredAt() time.Time { return e.BuiltAt }

// ManifestBuildFailedEvent is published when a manifest build aborts
type ManifestBuildFailedEvent struct {
	CenterName string    `json:"centerName"`
	CenterType string    `json:"centerType"`
	Reason     string    `json:"reason"`
	FailedAt   time.Time `json:"failedAt"`
}

func (e *ManifestBuildFailedEvent) EventType() string     { return "dcms.manifest.build-failed" }
func (e *ManifestBuildFailedEvent) OccurredAt() time.Time { return e.FailedAt }
