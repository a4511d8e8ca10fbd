package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Errors
var (
	ErrNoOrders = errors.New("manifest must have at least one input order")
)

// ManifestStatus represents the outcome of a manifest build.
type ManifestStatus string

const (
	ManifestStatusCompleted ManifestStatus = "completed"
	ManifestStatusFailed    ManifestStatus = "failed"
)

// ManifestCounts breaks down how the input rows were distributed.
type ManifestCounts struct {
	Input        int
	Boxed        int
	Consolidated int
	Individual   int
	Dropped      int
}

// Manifest is the aggregate root for a built shipment manifest: the final
// ordered row set for one center run plus the bookkeeping around it.
type Manifest struct {
	ManifestID   string
	CenterName   string
	CenterType   CenterType
	ShippingCost decimal.Decimal
	Orders       []Order
	Counts       ManifestCounts
	Status       ManifestStatus
	BuiltAt      time.Time

	domainEvents []DomainEvent
}

// NewManifest creates a completed Manifest from a pipeline run. The counts
// are derived from the output rows; dropped = input − rows accounted for.
func NewManifest(manifestID, centerName string, centerType CenterType, shippingCost decimal.Decimal, inputCount int, orders []Order) (*Manifest, error) {
	if inputCount == 0 {
		return nil, ErrNoOrders
	}

	counts := ManifestCounts{Input: inputCount}
	for _, o := range orders {
		switch {
		case o.IsBoxed():
			counts.Boxed++
		case o.IsConsolidated():
			counts.Consolidated++
		default:
			counts.Individual++
		}
	}

	m := &Manifest{
		ManifestID:   manifestID,
		CenterName:   centerName,
		CenterType:   centerType,
		ShippingCost: shippingCost,
		Orders:       orders,
		Counts:       counts,
		Status:       ManifestStatusCompleted,
		BuiltAt:      time.Now().UTC(),
	}

	m.AddDomainEvent(&ManifestBuiltEvent{
		ManifestID:   manifestID,
		CenterName:   centerName,
		CenterType:   string(centerType),
		InputRows:    inputCount,
		OutputRows:   len(orders),
		Consolidated: counts.Consolidated,
		BuiltAt:      m.BuiltAt,
	})

	return m, nil
}

// AddDomainEvent records a domain event on the aggregate.
func (m *Manifest) AddDomainEvent(event DomainEvent) {
	m.domainEvents = append(m.domainEvents, event)
}

// DomainEvents returns the recorded domain events.
func (m *Manifest) DomainEvents() []DomainEvent {
	return m.domainEvents
}

// ClearDomainEvents drops all recorded domain events.
func (m *Manifest) ClearDomainEvents() {
	m.domainEvents = nil
}
