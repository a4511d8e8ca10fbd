package domain

import "strings"

// CenterType selects the processing variant for a shipping center. It is
// resolved once at the service boundary and matched exhaustively afterwards.
type CenterType string

const (
	// CenterTypeStandard runs the classify/consolidate/annotate/merge pipeline.
	CenterTypeStandard CenterType = "standard"
	// CenterTypeRegionalSurcharge recomputes prices by region and raises the
	// shipping cost; no consolidation runs.
	CenterTypeRegionalSurcharge CenterType = "regional"
	// CenterTypeEventDiscount applies per-event price discounts and lowers the
	// shipping cost; no consolidation runs.
	CenterTypeEventDiscount CenterType = "event"
)

// ParseCenterType resolves a raw center-type selector. Matching is
// case-insensitive against the two special names; anything else, including
// the empty string, falls back to the standard pipeline.
func ParseCenterType(s string) CenterType {
	switch {
	case strings.EqualFold(s, string(CenterTypeRegionalSurcharge)):
		return CenterTypeRegionalSurcharge
	case strings.EqualFold(s, string(CenterTypeEventDiscount)):
		return CenterTypeEventDiscount
	default:
		return CenterTypeStandard
	}
}
