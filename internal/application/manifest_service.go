package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcms-platform/manifest-service/internal/domain"
	"github.com/dcms-platform/manifest-service/internal/pipeline"
	"github.com/dcms-platform/manifest-service/pkg/cloudevents"
	"github.com/dcms-platform/manifest-service/pkg/errors"
	"github.com/dcms-platform/manifest-service/pkg/kafka"
	"github.com/dcms-platform/manifest-service/pkg/logging"
	"github.com/dcms-platform/manifest-service/pkg/metrics"
)

// ManifestApplicationService handles manifest-related use cases
type ManifestApplicationService struct {
	repo         domain.ManifestRepository
	pipeline     *pipeline.Pipeline
	producer     *kafka.InstrumentedProducer
	eventFactory *cloudevents.EventFactory
	metrics      *metrics.Metrics
	logger       *logging.Logger
}

// NewManifestApplicationService creates a new ManifestApplicationService
func NewManifestApplicationService(
	repo domain.ManifestRepository,
	pipe *pipeline.Pipeline,
	producer *kafka.InstrumentedProducer,
	eventFactory *cloudevents.EventFactory,
	m *metrics.Metrics,
	logger *logging.Logger,
) *ManifestApplicationService {
	return &ManifestApplicationService{
		repo:         repo,
		pipeline:     pipe,
		producer:     producer,
		eventFactory: eventFactory,
		metrics:      m,
		logger:       logger,
	}
}

// BuildManifest runs the standard pipeline for a center and persists the
// resulting manifest
func (s *ManifestApplicationService) BuildManifest(ctx context.Context, cmd BuildManifestCommand) (*ManifestDTO, error) {
	if len(cmd.Orders) == 0 {
		return nil, errors.ErrValidation("manifest build requires at least one order row")
	}

	manifestID := cmd.ManifestID
	if manifestID == "" {
		manifestID = uuid.New().String()
	}

	rows, err := s.pipeline.Process(ctx, cmd.CenterName, cmd.Orders, cmd.ShippingCost)
	if err != nil {
		s.recordFailure(ctx, manifestID, cmd.CenterName, domain.CenterTypeStandard, err)
		return nil, fmt.Errorf("failed to build manifest: %w", err)
	}

	return s.persist(ctx, manifestID, cmd.CenterName, domain.CenterTypeStandard, cmd.ShippingCost, cmd.Orders, rows)
}

// BuildSpecialManifest routes a build by the center-type selector. Standard
// and unrecognized selectors run the full pipeline; the two special variants
// reprice only.
func (s *ManifestApplicationService) BuildSpecialManifest(ctx context.Context, cmd BuildSpecialManifestCommand) (*ManifestDTO, error) {
	if len(cmd.Orders) == 0 {
		return nil, errors.ErrValidation("manifest build requires at least one order row")
	}

	manifestID := cmd.ManifestID
	if manifestID == "" {
		manifestID = uuid.New().String()
	}

	centerType := domain.ParseCenterType(cmd.CenterType)

	rows, err := s.pipeline.ProcessSpecial(ctx, cmd.CenterName, centerType, cmd.Orders, cmd.ShippingCost)
	if err != nil {
		s.recordFailure(ctx, manifestID, cmd.CenterName, centerType, err)
		return nil, fmt.Errorf("failed to build special manifest: %w", err)
	}

	return s.persist(ctx, manifestID, cmd.CenterName, centerType, cmd.ShippingCost, cmd.Orders, rows)
}

// GetManifest retrieves a manifest by ID
func (s *ManifestApplicationService) GetManifest(ctx context.Context, query GetManifestQuery) (*ManifestDTO, error) {
	manifest, err := s.repo.FindByID(ctx, query.ManifestID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get manifest", "manifestId", query.ManifestID)
		return nil, fmt.Errorf("failed to get manifest: %w", err)
	}

	if manifest == nil {
		return nil, errors.ErrManifestNotFound(query.ManifestID)
	}

	return ToManifestDTO(manifest), nil
}

// GetByCenter retrieves recent manifests for a center
func (s *ManifestApplicationService) GetByCenter(ctx context.Context, query GetByCenterQuery) ([]ManifestDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 50 // Default limit
	}

	manifests, err := s.repo.FindByCenter(ctx, query.CenterName, limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get manifests by center", "centerName", query.CenterName)
		return nil, fmt.Errorf("failed to get manifests by center: %w", err)
	}

	return ToManifestDTOs(manifests), nil
}

func (s *ManifestApplicationService) persist(
	ctx context.Context,
	manifestID string,
	centerName string,
	centerType domain.CenterType,
	shippingCost decimal.Decimal,
	input []domain.Order,
	rows []domain.Order,
) (*ManifestDTO, error) {
	manifest, err := domain.NewManifest(manifestID, centerName, centerType, shippingCost, len(input), rows)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}
	manifest.Counts.Dropped = countInvalid(input)

	if err := s.repo.Save(ctx, manifest); err != nil {
		s.logger.WithError(err).Error("Failed to save manifest", "manifestId", manifestID)
		return nil, fmt.Errorf("failed to save manifest: %w", err)
	}

	s.publishBuilt(ctx, manifest)

	if s.metrics != nil {
		s.metrics.RecordManifestBuilt(string(centerType), true)
		s.metrics.RecordManifestRows(string(centerType), len(rows))
		s.metrics.RecordRowsConsolidated(manifest.Counts.Consolidated)
		s.metrics.RecordRowsDropped(manifest.Counts.Dropped)
	}

	// Log business event: manifest built
	s.logger.Event(ctx, "manifest.built", map[string]any{
		"manifestId": manifestID,
		"centerName": centerName,
		"centerType": string(centerType),
		"inputRows":  len(input),
		"outputRows": len(rows),
	})

	return ToManifestDTO(manifest), nil
}

// publishBuilt emits the built event best-effort; a broker outage never fails
// the build.
func (s *ManifestApplicationService) publishBuilt(ctx context.Context, m *domain.Manifest) {
	if s.producer == nil || s.eventFactory == nil {
		return
	}

	event := s.eventFactory.CreateManifestBuiltEvent(
		ctx,
		m.ManifestID,
		m.CenterName,
		string(m.CenterType),
		m.Counts.Input,
		len(m.Orders),
		m.Counts.Boxed,
		m.Counts.Consolidated,
		m.Counts.Dropped,
		m.BuiltAt,
	)

	if err := s.producer.PublishEvent(ctx, kafka.Topics.ManifestEvents, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish manifest built event", "manifestId", m.ManifestID)
	}
}

func (s *ManifestApplicationService) recordFailure(ctx context.Context, manifestID, centerName string, centerType domain.CenterType, buildErr error) {
	if s.metrics != nil {
		s.metrics.RecordManifestBuilt(string(centerType), false)
	}

	if s.producer == nil || s.eventFactory == nil {
		return
	}

	event := s.eventFactory.CreateManifestBuildFailedEvent(ctx, manifestID, centerName, buildErr.Error(), time.Now().UTC())
	if err := s.producer.PublishEvent(ctx, kafka.Topics.ManifestEvents, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish manifest build failed event", "manifestId", manifestID)
	}
}

func countInvalid(orders []domain.Order) int {
	dropped := 0
	for _, o := range orders {
		if !o.IsValid() {
			dropped++
		}
	}
	return dropped
}
