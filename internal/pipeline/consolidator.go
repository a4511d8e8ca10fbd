package pipeline

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dcms-platform/manifest-service/internal/domain"
)

// GroupResult is the outcome of consolidating one recipient group of size
// ≥ 2. Either Order is set, or the group was skipped and SkipReason says why.
// Skipped groups leave their members in the individual set untouched.
type GroupResult struct {
	Key        domain.OrderKey
	Order      *domain.Order
	Members    int
	SkipReason string
}

// Consolidated reports whether the group produced an invoice.
func (r GroupResult) Consolidated() bool {
	return r.Order != nil
}

// Consolidate groups individual rows by recipient key and synthesizes one
// consolidated invoice per group of size ≥ 2, in group-first-encountered
// order. Size-1 groups are not represented in the result at all; their rows
// stay in the individual set for the merge.
//
// shippingCost is the per-center cost stamped on every invoice; it is never
// copied from a member row.
func Consolidate(individual []domain.Order, shippingCost decimal.Decimal) []GroupResult {
	groups := make(map[domain.OrderKey][]domain.Order)
	keyOrder := make([]domain.OrderKey, 0)

	for _, o := range individual {
		key := o.Key()
		if _, seen := groups[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		groups[key] = append(groups[key], o)
	}

	results := make([]GroupResult, 0)
	for _, key := range keyOrder {
		members := groups[key]
		if len(members) < 2 {
			continue
		}
		results = append(results, consolidateGroup(key, members, shippingCost))
	}

	return results
}

func consolidateGroup(key domain.OrderKey, members []domain.Order, shippingCost decimal.Decimal) GroupResult {
	result := GroupResult{Key: key, Members: len(members)}

	quantity := 0
	totalPrice := decimal.Zero
	names := make([]string, 0, len(members))
	for _, m := range members {
		quantity += m.Quantity
		totalPrice = totalPrice.Add(m.TotalPrice)
		names = append(names, m.ProductName)
	}

	// A zero quantity sum would make the average unit price undefined. The
	// group falls back to shipping its members individually.
	if quantity == 0 {
		result.SkipReason = "group quantity sums to zero"
		return result
	}

	invoice := members[0]
	invoice.OrderNo = members[0].OrderNo + domain.ConsolidatedOrderSuffix
	invoice.ProductName = fmt.Sprintf("Consolidated Invoice (%d items)", len(members))
	invoice.Quantity = quantity
	invoice.UnitPrice = totalPrice.Div(decimal.NewFromInt(int64(quantity)))
	invoice.TotalPrice = totalPrice
	invoice.SpecialNote = strings.Join(names, ", ")
	invoice.ShippingCost = shippingCost

	result.Order = &invoice
	return result
}
