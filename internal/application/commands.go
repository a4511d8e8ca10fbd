package application

import (
	"github.com/shopspring/decimal"

	"github.com/dcms-platform/manifest-service/internal/domain"
)

// BuildManifestCommand represents the command to build a standard manifest
type BuildManifestCommand struct {
	ManifestID   string
	CenterName   string
	ShippingCost decimal.Decimal
	Orders       []domain.Order
}

// BuildSpecialManifestCommand represents the command to build a manifest for
// a special-pricing center
type BuildSpecialManifestCommand struct {
	ManifestID   string
	CenterName   string
	CenterType   string
	ShippingCost decimal.Decimal
	Orders       []domain.Order
}

// GetManifestQuery represents the query to get a manifest by ID
type GetManifestQuery struct {
	ManifestID string
}

// GetByCenterQuery represents the query to get manifests by center name
type GetByCenterQuery struct {
	CenterName string
	Limit      int
}
