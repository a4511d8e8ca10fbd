package pipeline

import "github.com/dcms-platform/manifest-service/internal/domain"

// Merge assembles the final manifest row order: all boxed rows, then all
// consolidated invoices, then every individual row whose recipient key did
// not produce a consolidated invoice.
//
// Suppression is key-based, not per-row: any individual row sharing a key
// with a consolidated invoice is dropped, including rows that were not
// members of the originating group. Skipped groups suppress nothing.
func Merge(individual, boxed []domain.Order, groups []GroupResult) []domain.Order {
	consolidatedKeys := make(map[domain.OrderKey]struct{}, len(groups))
	consolidated := make([]domain.Order, 0, len(groups))
	for _, g := range groups {
		if !g.Consolidated() {
			continue
		}
		// Key taken from the invoice row, not the grouping key: annotation may
		// have rewritten the address on invoice and members alike by the time
		// the merge runs.
		consolidatedKeys[g.Order.Key()] = struct{}{}
		consolidated = append(consolidated, *g.Order)
	}

	merged := make([]domain.Order, 0, len(boxed)+len(consolidated)+len(individual))
	merged = append(merged, boxed...)
	merged = append(merged, consolidated...)
	for _, o := range individual {
		if _, folded := consolidatedKeys[o.Key()]; folded {
			continue
		}
		merged = append(merged, o)
	}

	return merged
}
