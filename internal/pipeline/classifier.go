// Package pipeline implements the per-center manifest transformation:
// classification, consolidation, address annotation, merge, and the two
// special-center pricing variants.
package pipeline

import "github.com/dcms-platform/manifest-service/internal/domain"

// Classify partitions the input rows into individual and boxed sequences,
// preserving input order within each. Rows failing the usability predicate
// are dropped without error. The returned slices hold copies of the input
// rows, so later stages never alias the caller's data.
func Classify(orders []domain.Order) (individual, boxed []domain.Order) {
	individual = make([]domain.Order, 0, len(orders))
	boxed = make([]domain.Order, 0)

	for _, o := range orders {
		if !o.IsValid() {
			continue
		}
		if o.IsBoxed() {
			boxed = append(boxed, o)
		} else {
			individual = append(individual, o)
		}
	}

	return individual, boxed
}
