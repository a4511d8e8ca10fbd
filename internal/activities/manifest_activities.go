package activities

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/dcms-platform/manifest-service/internal/application"
	"github.com/dcms-platform/manifest-service/internal/workflows"
	"github.com/dcms-platform/manifest-service/pkg/logging"
)

// ManifestActivities exposes manifest builds to Temporal workflows
type ManifestActivities struct {
	service *application.ManifestApplicationService
	logger  *logging.Logger
}

// NewManifestActivities creates a new ManifestActivities instance
func NewManifestActivities(service *application.ManifestApplicationService, logger *logging.Logger) *ManifestActivities {
	return &ManifestActivities{
		service: service,
		logger:  logger,
	}
}

// BuildManifest runs the standard pipeline and persists the manifest
func (a *ManifestActivities) BuildManifest(ctx context.Context, input workflows.ManifestBuildInput) (*application.ManifestDTO, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Building manifest", "centerName", input.CenterName, "rowCount", len(input.Orders))

	ctx = withWorkflowCorrelation(ctx)

	cmd, err := buildCommand(input)
	if err != nil {
		return nil, err
	}

	dto, err := a.service.BuildManifest(ctx, application.BuildManifestCommand{
		ManifestID:   cmd.ManifestID,
		CenterName:   cmd.CenterName,
		ShippingCost: cmd.ShippingCost,
		Orders:       cmd.Orders,
	})
	if err != nil {
		logger.Error("Failed to build manifest", "centerName", input.CenterName, "error", err)
		return nil, fmt.Errorf("failed to build manifest: %w", err)
	}

	logger.Info("Manifest built", "manifestId", dto.ManifestID, "outputRows", len(dto.Orders))
	return dto, nil
}

// BuildSpecialManifest routes a build by the center-type selector
func (a *ManifestActivities) BuildSpecialManifest(ctx context.Context, input workflows.ManifestBuildInput) (*application.ManifestDTO, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Building special manifest",
		"centerName", input.CenterName,
		"centerType", input.CenterType,
		"rowCount", len(input.Orders),
	)

	ctx = withWorkflowCorrelation(ctx)

	cmd, err := buildCommand(input)
	if err != nil {
		return nil, err
	}

	dto, err := a.service.BuildSpecialManifest(ctx, application.BuildSpecialManifestCommand{
		ManifestID:   cmd.ManifestID,
		CenterName:   cmd.CenterName,
		CenterType:   input.CenterType,
		ShippingCost: cmd.ShippingCost,
		Orders:       cmd.Orders,
	})
	if err != nil {
		logger.Error("Failed to build special manifest", "centerName", input.CenterName, "error", err)
		return nil, fmt.Errorf("failed to build special manifest: %w", err)
	}

	logger.Info("Special manifest built", "manifestId", dto.ManifestID, "centerType", dto.CenterType)
	return dto, nil
}

// withWorkflowCorrelation stamps the workflow run ID onto the context as
// the correlation ID, so manifest events published from a worker build can
// be traced back to the run.
func withWorkflowCorrelation(ctx context.Context) context.Context {
	if !activity.IsActivity(ctx) {
		return ctx
	}
	info := activity.GetInfo(ctx)
	if info.WorkflowExecution.RunID == "" {
		return ctx
	}
	return logging.ContextWithCorrelationID(ctx, info.WorkflowExecution.RunID)
}

// buildCommand decodes the workflow payload. Malformed rows are permanent
// input defects; retrying cannot fix them, so they fail non-retryably.
func buildCommand(input workflows.ManifestBuildInput) (application.BuildManifestCommand, error) {
	orders, err := application.ToOrderRows(input.Orders)
	if err != nil {
		return application.BuildManifestCommand{}, temporal.NewNonRetryableApplicationError(
			err.Error(), "InvalidOrderRows", err)
	}

	shippingCost := decimal.Decimal{}
	if input.ShippingCost != "" {
		shippingCost, err = decimal.NewFromString(input.ShippingCost)
		if err != nil {
			return application.BuildManifestCommand{}, temporal.NewNonRetryableApplicationError(
				fmt.Sprintf("invalid shippingCost %q", input.ShippingCost), "InvalidOrderRows", err)
		}
	}

	return application.BuildManifestCommand{
		ManifestID:   input.ManifestID,
		CenterName:   input.CenterName,
		ShippingCost: shippingCost,
		Orders:       orders,
	}, nil
}
