package application

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcms-platform/manifest-service/internal/domain"
)

func TestToOrderRow(t *testing.T) {
	dto := OrderRowDTO{
		OrderNo:       "ORD-001",
		OrderDate:     "2026-03-15",
		RecipientName: "Kim",
		Address:       "Seoul-1",
		ProductName:   "Socks",
		Quantity:      2,
		UnitPrice:     "1000",
		TotalPrice:    "2000",
		ShippingCost:  "3000",
		Region:        "Jeju",
	}

	order, err := ToOrderRow(dto)
	require.NoError(t, err)

	assert.Equal(t, "ORD-001", order.OrderNo)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), order.OrderDate)
	assert.Equal(t, "Kim", order.RecipientName)
	assert.Equal(t, 2, order.Quantity)
	assert.True(t, order.UnitPrice.Equal(decimal.NewFromInt(1000)))
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(2000)))
	assert.True(t, order.ShippingCost.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, "Jeju", order.Region)
}

func TestToOrderRowEmptyOptionalFields(t *testing.T) {
	order, err := ToOrderRow(OrderRowDTO{
		OrderNo:       "ORD-001",
		RecipientName: "Kim",
		Address:       "Seoul-1",
		Quantity:      1,
	})
	require.NoError(t, err)

	assert.True(t, order.OrderDate.IsZero())
	assert.True(t, order.UnitPrice.IsZero())
	assert.True(t, order.TotalPrice.IsZero())
	assert.True(t, order.ShippingCost.IsZero())
}

func TestToOrderRowMalformedFields(t *testing.T) {
	tests := []struct {
		name string
		dto  OrderRowDTO
	}{
		{
			name: "Malformed unit price",
			dto:  OrderRowDTO{OrderNo: "ORD-001", UnitPrice: "one thousand"},
		},
		{
			name: "Malformed total price",
			dto:  OrderRowDTO{OrderNo: "ORD-001", TotalPrice: "2,000"},
		},
		{
			name: "Malformed order date",
			dto:  OrderRowDTO{OrderNo: "ORD-001", OrderDate: "15/03/2026"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToOrderRow(tt.dto)
			assert.Error(t, err)
		})
	}
}

func TestToOrderRowsReportsRowIndex(t *testing.T) {
	_, err := ToOrderRows([]OrderRowDTO{
		{OrderNo: "ORD-001", UnitPrice: "1000"},
		{OrderNo: "ORD-002", UnitPrice: "bad"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order row 1")
}

func TestOrderRowRoundTrip(t *testing.T) {
	dto := OrderRowDTO{
		OrderNo:       "ORD-001",
		OrderDate:     "2026-03-15",
		RecipientName: "Kim",
		Address:       "Seoul-1",
		ProductName:   "Socks",
		Quantity:      3,
		UnitPrice:     "666.67",
		TotalPrice:    "2000.01",
		BoxSize:       "L",
		SpecialNote:   "Socks, Gloves",
	}

	order, err := ToOrderRow(dto)
	require.NoError(t, err)

	assert.Equal(t, dto, ToOrderRowDTO(order))
}

func TestToManifestDTO(t *testing.T) {
	rows := []domain.Order{
		{OrderNo: "ORD-004", RecipientName: "C", Address: "Daegu-1", Quantity: 1, BoxSize: "L"},
		{OrderNo: "ORD-001_consolidated", RecipientName: "A", Address: "Seoul-1", Quantity: 3},
		{OrderNo: "ORD-003", RecipientName: "B", Address: "Busan-1", Quantity: 1},
	}

	manifest, err := domain.NewManifest("MAN-1", "center-1", domain.CenterTypeStandard, decimal.NewFromInt(3000), 5, rows)
	require.NoError(t, err)

	dto := ToManifestDTO(manifest)
	require.NotNil(t, dto)

	assert.Equal(t, "MAN-1", dto.ManifestID)
	assert.Equal(t, "center-1", dto.CenterName)
	assert.Equal(t, "standard", dto.CenterType)
	assert.Equal(t, "3000", dto.ShippingCost)
	assert.Equal(t, "completed", dto.Status)
	assert.Equal(t, 5, dto.Counts.Input)
	assert.Equal(t, 1, dto.Counts.Boxed)
	assert.Equal(t, 1, dto.Counts.Consolidated)
	assert.Equal(t, 1, dto.Counts.Individual)
	require.Len(t, dto.Orders, 3)
	assert.Equal(t, "ORD-004", dto.Orders[0].OrderNo)
}

func TestToManifestDTONil(t *testing.T) {
	assert.Nil(t, ToManifestDTO(nil))
}
