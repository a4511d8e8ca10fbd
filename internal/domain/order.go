package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ConsolidatedOrderSuffix marks a synthesized consolidated-invoice order
// number. The prefix is the first group member's order number.
const ConsolidatedOrderSuffix = "_consolidated"

// Order is one shipment line item bound for a recipient. It is a plain value
// type: pipeline stages copy orders instead of sharing pointers, so a struct
// assignment is a full copy.
type Order struct {
	OrderNo          string
	OrderDate        time.Time
	RecipientName    string
	RecipientPhone   string
	Address          string
	DetailAddress    string
	ZipCode          string
	ProductCode      string
	ProductName      string
	Quantity         int
	UnitPrice        decimal.Decimal
	TotalPrice       decimal.Decimal
	ShippingType     string
	ShippingCenter   string
	PaymentMethod    string
	ShippingCost     decimal.Decimal
	BoxSize          string
	SpecialNote      string
	ProcessingStatus string
	StoreName        string
	EventType        string
	PriceCategory    string
	Region           string
	DeliveryArea     string
}

// OrderKey identifies a recipient for consolidation grouping. Comparison is
// exact value equality on the raw strings; no trimming or normalization.
type OrderKey struct {
	RecipientName string
	Address       string
}

// Key returns the consolidation grouping key for the order.
func (o Order) Key() OrderKey {
	return OrderKey{RecipientName: o.RecipientName, Address: o.Address}
}

// IsBoxed reports whether the order ships in a box. An empty box size means
// the item ships individually.
func (o Order) IsBoxed() bool {
	return o.BoxSize != ""
}

// IsConsolidated reports whether the order is a synthesized consolidated
// invoice rather than a source row.
func (o Order) IsConsolidated() bool {
	return strings.HasSuffix(o.OrderNo, ConsolidatedOrderSuffix)
}

// IsValid is the row-usability predicate. Rows failing it are dropped
// silently at classification and special-pricing time.
func (o Order) IsValid() bool {
	return o.OrderNo != "" &&
		o.RecipientName != "" &&
		o.Address != "" &&
		o.Quantity > 0
}
