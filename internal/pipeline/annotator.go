package pipeline

import (
	"strings"

	"github.com/dcms-platform/manifest-service/internal/domain"
)

// AddressMarker is appended to addresses that match a dwelling-type keyword.
const AddressMarker = "★"

// Dwelling-type keywords matched as exact, case-sensitive substrings.
var dwellingKeywords = []string{
	"Apartment",
	"Villa",
	"Commercial Building",
	"Officetel",
	"One-room",
}

// AnnotateAddresses appends the marker to every row whose address contains a
// dwelling-type keyword and returns the number of rows marked. Rows with an
// empty address are never marked.
//
// Each invocation appends unconditionally: calling it twice on the same rows
// marks them twice. The pipeline runs it exactly once per row.
func AnnotateAddresses(orders []domain.Order) int {
	marked := 0
	for i := range orders {
		if orders[i].Address == "" {
			continue
		}
		for _, kw := range dwellingKeywords {
			if strings.Contains(orders[i].Address, kw) {
				orders[i].Address += AddressMarker
				marked++
				break
			}
		}
	}
	return marked
}
