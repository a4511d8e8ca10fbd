package cloudevents

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcms-platform/manifest-service/pkg/logging"
)

func TestCreateEventCarriesCorrelationFromContext(t *testing.T) {
	factory := NewEventFactory(SourceManifest)

	ctx := logging.ContextWithCorrelationID(context.Background(), "corr-1")
	event := factory.CreateEvent(ctx, ManifestBuilt, "manifest/m-1", nil)

	assert.Equal(t, "1.0", event.SpecVersion)
	assert.Equal(t, ManifestBuilt, event.Type)
	assert.Equal(t, SourceManifest, event.Source)
	assert.Equal(t, "corr-1", event.CorrelationID)
	assert.NotEmpty(t, event.ID)
}

func TestCreateEventWithoutCorrelation(t *testing.T) {
	factory := NewEventFactory(SourceManifest)

	event := factory.CreateEvent(context.Background(), ManifestBuilt, "manifest/m-1", nil)
	assert.Empty(t, event.CorrelationID)
}

func TestCreateManifestBuiltEvent(t *testing.T) {
	factory := NewEventFactory(SourceManifest)
	builtAt := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

	event := factory.CreateManifestBuiltEvent(
		context.Background(),
		"m-1", "center-1", "standard",
		5, 3, 1, 2, 0,
		builtAt,
	)

	assert.Equal(t, ManifestBuilt, event.Type)
	assert.Equal(t, "manifest/m-1", event.Subject)
	assert.Equal(t, "center-1", event.CenterName)

	data, ok := event.Data.(ManifestBuiltData)
	require.True(t, ok)
	assert.Equal(t, "m-1", data.ManifestID)
	assert.Equal(t, 5, data.InputRows)
	assert.Equal(t, 3, data.OutputRows)
	assert.Equal(t, builtAt, data.BuiltAt)
}

func TestCreateManifestBuildFailedEvent(t *testing.T) {
	factory := NewEventFactory(SourceManifest)
	failedAt := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

	event := factory.CreateManifestBuildFailedEvent(
		context.Background(),
		"m-2", "center-1", "unknown center type", failedAt,
	)

	assert.Equal(t, ManifestBuildFailed, event.Type)
	data, ok := event.Data.(ManifestBuildFailedData)
	require.True(t, ok)
	assert.Equal(t, "unknown center type", data.Reason)
}
