package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/dcms-platform/manifest-service/internal/application"
)

// ManifestBuildInput carries the order rows for a manifest build. Decimal
// fields travel as strings so the payload survives JSON serialization intact.
type ManifestBuildInput struct {
	ManifestID   string                    `json:"manifestId,omitempty"`
	CenterName   string                    `json:"centerName"`
	CenterType   string                    `json:"centerType,omitempty"`
	ShippingCost string                    `json:"shippingCost,omitempty"`
	Orders       []application.OrderRowDTO `json:"orders"`
}

// ManifestBuildResult summarizes a completed manifest build
type ManifestBuildResult struct {
	ManifestID string `json:"manifestId"`
	CenterName string `json:"centerName"`
	CenterType string `json:"centerType"`
	InputRows  int    `json:"inputRows"`
	OutputRows int    `json:"outputRows"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// ManifestBuildWorkflow runs the standard manifest pipeline for a center
func ManifestBuildWorkflow(ctx workflow.Context, input ManifestBuildInput) (*ManifestBuildResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting manifest build workflow", "centerName", input.CenterName, "rowCount", len(input.Orders))

	ctx = workflow.WithActivityOptions(ctx, buildActivityOptions())

	result := &ManifestBuildResult{
		CenterName: input.CenterName,
	}

	var dto application.ManifestDTO
	if err := workflow.ExecuteActivity(ctx, "BuildManifest", input).Get(ctx, &dto); err != nil {
		result.Error = fmt.Sprintf("manifest build failed: %v", err)
		return result, err
	}

	fillResult(result, &dto)
	logger.Info("Manifest build workflow completed",
		"manifestId", result.ManifestID,
		"centerName", result.CenterName,
		"outputRows", result.OutputRows,
	)
	return result, nil
}

// SpecialManifestBuildWorkflow routes a build by the center-type selector;
// regional and event centers reprice instead of consolidating.
func SpecialManifestBuildWorkflow(ctx workflow.Context, input ManifestBuildInput) (*ManifestBuildResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting special manifest build workflow",
		"centerName", input.CenterName,
		"centerType", input.CenterType,
		"rowCount", len(input.Orders),
	)

	ctx = workflow.WithActivityOptions(ctx, buildActivityOptions())

	result := &ManifestBuildResult{
		CenterName: input.CenterName,
	}

	var dto application.ManifestDTO
	if err := workflow.ExecuteActivity(ctx, "BuildSpecialManifest", input).Get(ctx, &dto); err != nil {
		result.Error = fmt.Sprintf("special manifest build failed: %v", err)
		return result, err
	}

	fillResult(result, &dto)
	logger.Info("Special manifest build workflow completed",
		"manifestId", result.ManifestID,
		"centerType", result.CenterType,
		"outputRows", result.OutputRows,
	)
	return result, nil
}

// buildActivityOptions bounds a build by start-to-close time only; the
// activities run a single in-memory pass plus one write and never heartbeat.
func buildActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
			NonRetryableErrorTypes: []string{
				"InvalidOrderRows",
			},
		},
	}
}

func fillResult(result *ManifestBuildResult, dto *application.ManifestDTO) {
	result.ManifestID = dto.ManifestID
	result.CenterType = dto.CenterType
	result.InputRows = dto.Counts.Input
	result.OutputRows = len(dto.Orders)
	result.Success = true
}
