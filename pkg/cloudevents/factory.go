package cloudevents

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dcms-platform/manifest-service/pkg/logging"
)

// EventFactory creates CloudEvents for DCMS domain events
type EventFactory struct {
	source string
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source}
}

// CreateEvent creates a new DCMSCloudEvent. The correlation ID stamped on
// ctx by the HTTP middleware or the Temporal activities carries through to
// the event extension.
func (f *EventFactory) CreateEvent(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
) *DCMSCloudEvent {
	return &DCMSCloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
		CorrelationID:   logging.CorrelationIDFromContext(ctx),
	}
}

// CreateManifestBuiltEvent creates a ManifestBuilt event
func (f *EventFactory) CreateManifestBuiltEvent(
	ctx context.Context,
	manifestID string,
	centerName string,
	centerType string,
	inputRows int,
	outputRows int,
	boxedRows int,
	consolidatedRows int,
	droppedRows int,
	builtAt time.Time,
) *DCMSCloudEvent {
	data := ManifestBuiltData{
		ManifestID:       manifestID,
		CenterName:       centerName,
		CenterType:       centerType,
		InputRows:        inputRows,
		OutputRows:       outputRows,
		BoxedRows:        boxedRows,
		ConsolidatedRows: consolidatedRows,
		DroppedRows:      droppedRows,
		BuiltAt:          builtAt,
	}
	event := f.CreateEvent(ctx, ManifestBuilt, "manifest/"+manifestID, data)
	event.CenterName = centerName
	return event
}

// CreateManifestBuildFailedEvent creates a ManifestBuildFailed event
func (f *EventFactory) CreateManifestBuildFailedEvent(
	ctx context.Context,
	manifestID string,
	centerName string,
	reason string,
	failedAt time.Time,
) *DCMSCloudEvent {
	data := ManifestBuildFailedData{
		ManifestID: manifestID,
		CenterName: centerName,
		Reason:     reason,
		FailedAt:   failedAt,
	}
	event := f.CreateEvent(ctx, ManifestBuildFailed, "manifest/"+manifestID, data)
	event.CenterName = centerName
	return event
}
