package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcms-platform/manifest-service/internal/domain"
)

// TestConsolidate tests recipient-group invoice synthesis
func TestConsolidate(t *testing.T) {
	shippingCost := decimal.NewFromInt(3000)

	t.Run("Two rows for one recipient produce one invoice", func(t *testing.T) {
		a := testOrder("ORD-001", "A", "Seoul-1", 1, 1000, 1000)
		a.ProductName = "Socks"
		b := testOrder("ORD-002", "A", "Seoul-1", 2, 1000, 2000)
		b.ProductName = "Gloves"

		results := Consolidate([]domain.Order{a, b}, shippingCost)
		require.Len(t, results, 1)
		require.True(t, results[0].Consolidated())

		invoice := results[0].Order
		assert.Equal(t, "ORD-001_consolidated", invoice.OrderNo)
		assert.Equal(t, "Consolidated Invoice (2 items)", invoice.ProductName)
		assert.Equal(t, 3, invoice.Quantity)
		assert.True(t, invoice.UnitPrice.Equal(decimal.NewFromInt(1000)), "unit price %s", invoice.UnitPrice)
		assert.True(t, invoice.TotalPrice.Equal(decimal.NewFromInt(3000)), "total price %s", invoice.TotalPrice)
		assert.Equal(t, "Socks, Gloves", invoice.SpecialNote)
		assert.True(t, invoice.ShippingCost.Equal(shippingCost))
		assert.Equal(t, 2, results[0].Members)
	})

	t.Run("Descriptive fields come from the first member", func(t *testing.T) {
		a := testOrder("ORD-001", "A", "Seoul-1", 1, 1000, 1000)
		a.RecipientPhone = "010-1111-1111"
		a.ZipCode = "04524"
		a.Region = "Seoul"
		b := testOrder("ORD-002", "A", "Seoul-1", 1, 1000, 1000)
		b.RecipientPhone = "010-2222-2222"
		b.ZipCode = "99999"
		b.Region = "Busan"

		results := Consolidate([]domain.Order{a, b}, shippingCost)
		require.Len(t, results, 1)
		require.True(t, results[0].Consolidated())

		invoice := results[0].Order
		assert.Equal(t, "010-1111-1111", invoice.RecipientPhone)
		assert.Equal(t, "04524", invoice.ZipCode)
		assert.Equal(t, "Seoul", invoice.Region)
	})

	t.Run("Size-1 groups produce nothing", func(t *testing.T) {
		results := Consolidate([]domain.Order{
			testOrder("ORD-001", "A", "Seoul-1", 1, 1000, 1000),
			testOrder("ORD-002", "B", "Busan-1", 1, 1000, 1000),
		}, shippingCost)
		assert.Empty(t, results)
	})

	t.Run("Groups keep first-encountered order", func(t *testing.T) {
		results := Consolidate([]domain.Order{
			testOrder("ORD-001", "B", "Busan-1", 1, 1000, 1000),
			testOrder("ORD-002", "A", "Seoul-1", 1, 1000, 1000),
			testOrder("ORD-003", "B", "Busan-1", 1, 1000, 1000),
			testOrder("ORD-004", "A", "Seoul-1", 1, 1000, 1000),
		}, shippingCost)

		require.Len(t, results, 2)
		assert.Equal(t, "B", results[0].Key.RecipientName)
		assert.Equal(t, "ORD-001_consolidated", results[0].Order.OrderNo)
		assert.Equal(t, "A", results[1].Key.RecipientName)
		assert.Equal(t, "ORD-002_consolidated", results[1].Order.OrderNo)
	})

	t.Run("Key equality is exact, untrimmed", func(t *testing.T) {
		results := Consolidate([]domain.Order{
			testOrder("ORD-001", "A", "Seoul-1", 1, 1000, 1000),
			testOrder("ORD-002", "A", "Seoul-1 ", 1, 1000, 1000), // trailing space: different key
		}, shippingCost)
		assert.Empty(t, results)
	})

	t.Run("Zero-quantity group is skipped, not raised", func(t *testing.T) {
		results := Consolidate([]domain.Order{
			testOrder("ORD-001", "A", "Seoul-1", 0, 1000, 0),
			testOrder("ORD-002", "A", "Seoul-1", 0, 1000, 0),
		}, shippingCost)

		require.Len(t, results, 1)
		assert.False(t, results[0].Consolidated())
		assert.Nil(t, results[0].Order)
		assert.Equal(t, "group quantity sums to zero", results[0].SkipReason)
		assert.Equal(t, 2, results[0].Members)
	})

	t.Run("Fractional average unit price", func(t *testing.T) {
		results := Consolidate([]domain.Order{
			testOrder("ORD-001", "A", "Seoul-1", 1, 1000, 1000),
			testOrder("ORD-002", "A", "Seoul-1", 2, 500, 1000),
		}, shippingCost)

		require.Len(t, results, 1)
		require.True(t, results[0].Consolidated())
		// 2000 / 3
		want := decimal.NewFromInt(2000).Div(decimal.NewFromInt(3))
		assert.True(t, results[0].Order.UnitPrice.Equal(want))
		assert.True(t, results[0].Order.TotalPrice.Equal(decimal.NewFromInt(2000)))
	})
}
