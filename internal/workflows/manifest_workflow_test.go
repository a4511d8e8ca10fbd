package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	"github.com/dcms-platform/manifest-service/internal/application"
)

func sampleInput() ManifestBuildInput {
	return ManifestBuildInput{
		ManifestID:   "MAN-1",
		CenterName:   "center-1",
		ShippingCost: "3000",
		Orders: []application.OrderRowDTO{
			{OrderNo: "ORD-001", RecipientName: "A", Address: "Seoul-1", Quantity: 1, UnitPrice: "1000", TotalPrice: "1000"},
			{OrderNo: "ORD-002", RecipientName: "A", Address: "Seoul-1", Quantity: 2, UnitPrice: "1000", TotalPrice: "2000"},
		},
	}
}

func builtDTO(centerType string, outputRows int) *application.ManifestDTO {
	orders := make([]application.OrderRowDTO, outputRows)
	for i := range orders {
		orders[i] = application.OrderRowDTO{OrderNo: "ORD-001", RecipientName: "A", Address: "Seoul-1", Quantity: 1}
	}
	return &application.ManifestDTO{
		ManifestID: "MAN-1",
		CenterName: "center-1",
		CenterType: centerType,
		Status:     "completed",
		Counts:     application.ManifestCountsDTO{Input: 2},
		Orders:     orders,
	}
}

func TestManifestBuildWorkflow(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	env.RegisterWorkflow(ManifestBuildWorkflow)
	env.RegisterActivityWithOptions(func(ctx context.Context, input ManifestBuildInput) (*application.ManifestDTO, error) {
		assert.Equal(t, "center-1", input.CenterName)
		return builtDTO("standard", 1), nil
	}, activity.RegisterOptions{Name: "BuildManifest"})

	env.ExecuteWorkflow(ManifestBuildWorkflow, sampleInput())
	require.NoError(t, env.GetWorkflowError())

	var result ManifestBuildResult
	require.NoError(t, env.GetWorkflowResult(&result))
	assert.True(t, result.Success)
	assert.Equal(t, "MAN-1", result.ManifestID)
	assert.Equal(t, "standard", result.CenterType)
	assert.Equal(t, 2, result.InputRows)
	assert.Equal(t, 1, result.OutputRows)
}

func TestManifestBuildWorkflowActivityError(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	env.RegisterWorkflow(ManifestBuildWorkflow)
	env.RegisterActivityWithOptions(func(ctx context.Context, input ManifestBuildInput) (*application.ManifestDTO, error) {
		return nil, errors.New("mongo unavailable")
	}, activity.RegisterOptions{Name: "BuildManifest"})

	env.ExecuteWorkflow(ManifestBuildWorkflow, sampleInput())
	assert.Error(t, env.GetWorkflowError())
}

func TestSpecialManifestBuildWorkflow(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	env.RegisterWorkflow(SpecialManifestBuildWorkflow)
	env.RegisterActivityWithOptions(func(ctx context.Context, input ManifestBuildInput) (*application.ManifestDTO, error) {
		assert.Equal(t, "regional", input.CenterType)
		return builtDTO("regional", 2), nil
	}, activity.RegisterOptions{Name: "BuildSpecialManifest"})

	input := sampleInput()
	input.CenterType = "regional"

	env.ExecuteWorkflow(SpecialManifestBuildWorkflow, input)
	require.NoError(t, env.GetWorkflowError())

	var result ManifestBuildResult
	require.NoError(t, env.GetWorkflowResult(&result))
	assert.True(t, result.Success)
	assert.Equal(t, "regional", result.CenterType)
	assert.Equal(t, 2, result.OutputRows)
}
