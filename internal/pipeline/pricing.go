package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/dcms-platform/manifest-service/internal/domain"
)

// Regions carrying a delivery surcharge. Matching is exact on the raw
// region string.
const (
	RegionJeju    = "Jeju"
	RegionGangwon = "Gangwon"
)

// Event types eligible for a discount.
const (
	EventSpringSale  = "spring_sale"
	EventAutumnSale  = "autumn_sale"
	EventBlackFriday = "black_friday"
)

var (
	surchargeJeju    = decimal.NewFromFloat(1.10)
	surchargeGangwon = decimal.NewFromFloat(1.05)
	surchargeShip    = decimal.NewFromFloat(1.2)

	discountSpring = decimal.NewFromFloat(0.90)
	discountAutumn = decimal.NewFromFloat(0.95)
	discountFriday = decimal.NewFromFloat(0.80)
	discountShip   = decimal.NewFromFloat(0.8)
)

// ApplyRegionalSurcharge recomputes prices for the regional-surcharge center:
// Jeju rows get a 10% unit-price surcharge, Gangwon 5%, everything else is
// unchanged; total price follows unit price, and every row is stamped with
// shipping cost = base × 1.2. Invalid rows are dropped; valid rows come out
// once each, in input order.
func ApplyRegionalSurcharge(orders []domain.Order, baseShippingCost decimal.Decimal) []domain.Order {
	shippingCost := baseShippingCost.Mul(surchargeShip)

	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !o.IsValid() {
			continue
		}
		switch o.Region {
		case RegionJeju:
			o.UnitPrice = o.UnitPrice.Mul(surchargeJeju)
		case RegionGangwon:
			o.UnitPrice = o.UnitPrice.Mul(surchargeGangwon)
		}
		o.TotalPrice = o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))
		o.ShippingCost = shippingCost
		out = append(out, o)
	}

	return out
}

// ApplyEventDiscount recomputes prices for the event-discount center: rows
// with a recognized event type get the tier discount on unit price and a
// recomputed total; rows with an empty event type keep their prices; every
// row, discounted or not, is stamped with shipping cost = base × 0.8.
// Unrecognized non-empty event types get no discount.
func ApplyEventDiscount(orders []domain.Order, baseShippingCost decimal.Decimal) []domain.Order {
	shippingCost := baseShippingCost.Mul(discountShip)

	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !o.IsValid() {
			continue
		}
		if o.EventType != "" {
			if rate, ok := discountRate(o.EventType); ok {
				o.UnitPrice = o.UnitPrice.Mul(rate)
				o.TotalPrice = o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))
			}
		}
		o.ShippingCost = shippingCost
		out = append(out, o)
	}

	return out
}

func discountRate(eventType string) (decimal.Decimal, bool) {
	switch eventType {
	case EventSpringSale:
		return discountSpring, true
	case EventAutumnSale:
		return discountAutumn, true
	case EventBlackFriday:
		return discountFriday, true
	default:
		return decimal.Decimal{}, false
	}
}
