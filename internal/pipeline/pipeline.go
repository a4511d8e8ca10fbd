package pipeline

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dcms-platform/manifest-service/internal/domain"
	"github.com/dcms-platform/manifest-service/pkg/logging"
	"github.com/dcms-platform/manifest-service/pkg/metrics"
)

// Pipeline orchestrates the per-center manifest transformation. A Pipeline
// is safe for reuse across runs; each run works on its own copies of the
// input rows.
type Pipeline struct {
	logger   *logging.Logger
	notifier ProgressNotifier
	metrics  *metrics.Metrics
}

// New creates a Pipeline. A nil notifier disables progress reporting.
func New(logger *logging.Logger, notifier ProgressNotifier) *Pipeline {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &Pipeline{
		logger:   logger.WithComponent("pipeline"),
		notifier: notifier,
	}
}

// WithMetrics enables per-run business metrics and returns the Pipeline.
func (p *Pipeline) WithMetrics(m *metrics.Metrics) *Pipeline {
	p.metrics = m
	return p
}

// Process runs the standard transformation: classify, consolidate, annotate,
// merge. The returned rows are the final manifest order. An unexpected
// failure is reported to the progress sink best-effort and returned to the
// caller; no partial manifest is produced.
func (p *Pipeline) Process(ctx context.Context, centerName string, orders []domain.Order, shippingCost decimal.Decimal) (result []domain.Order, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("manifest build for center %s failed: %v", centerName, r)
			p.notify(fmt.Sprintf("manifest build failed for center %s: %v", centerName, r))
			p.logger.Error("Pipeline run aborted", "centerName", centerName, "panic", r)
			result = nil
		}
	}()

	p.notify(fmt.Sprintf("manifest build started for center %s: %d rows", centerName, len(orders)))

	individual, boxed := Classify(orders)
	dropped := len(orders) - len(individual) - len(boxed)
	p.notify(fmt.Sprintf("classification complete: %d individual, %d boxed, %d dropped", len(individual), len(boxed), dropped))

	groups := Consolidate(individual, shippingCost)
	consolidated, skipped := 0, 0
	for _, g := range groups {
		if g.Consolidated() {
			consolidated++
		} else {
			skipped++
			p.logger.Warn("Consolidation group skipped",
				"centerName", centerName,
				"recipientName", g.Key.RecipientName,
				"members", g.Members,
				"reason", g.SkipReason,
			)
			if p.metrics != nil {
				p.metrics.RecordGroupSkipped(g.SkipReason)
			}
		}
	}
	p.notify(fmt.Sprintf("consolidation complete: %d invoices, %d groups skipped", consolidated, skipped))

	// One annotation pass per row across the whole run; the marker append is
	// not idempotent.
	flagged := AnnotateAddresses(individual)
	flagged += AnnotateAddresses(boxed)
	for _, g := range groups {
		if g.Consolidated() {
			flagged += annotateOne(g.Order)
		}
	}
	if p.metrics != nil {
		p.metrics.RecordAddressesFlagged(flagged)
	}
	p.notify("address annotation complete")

	merged := Merge(individual, boxed, groups)
	p.notify(fmt.Sprintf("merge complete: %d manifest rows", len(merged)))

	p.logger.Info("Pipeline run complete",
		"centerName", centerName,
		"inputRows", len(orders),
		"outputRows", len(merged),
		"consolidated", consolidated,
		"droppedRows", dropped,
	)

	return merged, nil
}

// ProcessSpecial routes a run by center type. The two special variants
// reprice every valid row without classification, consolidation, merge, or
// annotation; the standard type falls back to Process.
func (p *Pipeline) ProcessSpecial(ctx context.Context, centerName string, centerType domain.CenterType, orders []domain.Order, shippingCost decimal.Decimal) (result []domain.Order, err error) {
	if centerType == domain.CenterTypeStandard {
		return p.Process(ctx, centerName, orders, shippingCost)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("special manifest build for center %s failed: %v", centerName, r)
			p.notify(fmt.Sprintf("special manifest build failed for center %s: %v", centerName, r))
			p.logger.Error("Special pipeline run aborted", "centerName", centerName, "panic", r)
			result = nil
		}
	}()

	p.notify(fmt.Sprintf("special manifest build started for center %s (%s): %d rows", centerName, centerType, len(orders)))

	switch centerType {
	case domain.CenterTypeRegionalSurcharge:
		result = ApplyRegionalSurcharge(orders, shippingCost)
	case domain.CenterTypeEventDiscount:
		result = ApplyEventDiscount(orders, shippingCost)
	default:
		return nil, fmt.Errorf("unknown center type %q", centerType)
	}

	p.notify(fmt.Sprintf("special pricing complete: %d manifest rows", len(result)))

	p.logger.Info("Special pipeline run complete",
		"centerName", centerName,
		"centerType", string(centerType),
		"inputRows", len(orders),
		"outputRows", len(result),
	)

	return result, nil
}

func annotateOne(o *domain.Order) int {
	rows := []domain.Order{*o}
	marked := AnnotateAddresses(rows)
	*o = rows[0]
	return marked
}

// notify delivers a progress message, absorbing any failure so a broken
// sink can never abort the run.
func (p *Pipeline) notify(message string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("Progress notification dropped", "panic", r)
		}
	}()
	p.notifier.Notify(message)
}
