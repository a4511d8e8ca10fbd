package application

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcms-platform/manifest-service/internal/domain"
)

const orderDateLayout = "2006-01-02"

// ToOrderRow converts an OrderRowDTO to a domain Order. Malformed decimal or
// date fields are reported; empty optional fields map to zero values.
func ToOrderRow(dto OrderRowDTO) (domain.Order, error) {
	unitPrice, err := parseDecimal(dto.UnitPrice, "unitPrice")
	if err != nil {
		return domain.Order{}, err
	}
	totalPrice, err := parseDecimal(dto.TotalPrice, "totalPrice")
	if err != nil {
		return domain.Order{}, err
	}
	shippingCost, err := parseDecimal(dto.ShippingCost, "shippingCost")
	if err != nil {
		return domain.Order{}, err
	}

	var orderDate time.Time
	if dto.OrderDate != "" {
		orderDate, err = time.Parse(orderDateLayout, dto.OrderDate)
		if err != nil {
			return domain.Order{}, fmt.Errorf("invalid orderDate %q: expected YYYY-MM-DD", dto.OrderDate)
		}
	}

	return domain.Order{
		OrderNo:          dto.OrderNo,
		OrderDate:        orderDate,
		RecipientName:    dto.RecipientName,
		RecipientPhone:   dto.RecipientPhone,
		Address:          dto.Address,
		DetailAddress:    dto.DetailAddress,
		ZipCode:          dto.ZipCode,
		ProductCode:      dto.ProductCode,
		ProductName:      dto.ProductName,
		Quantity:         dto.Quantity,
		UnitPrice:        unitPrice,
		TotalPrice:       totalPrice,
		ShippingType:     dto.ShippingType,
		ShippingCenter:   dto.ShippingCenter,
		PaymentMethod:    dto.PaymentMethod,
		ShippingCost:     shippingCost,
		BoxSize:          dto.BoxSize,
		SpecialNote:      dto.SpecialNote,
		ProcessingStatus: dto.ProcessingStatus,
		StoreName:        dto.StoreName,
		EventType:        dto.EventType,
		PriceCategory:    dto.PriceCategory,
		Region:           dto.Region,
		DeliveryArea:     dto.DeliveryArea,
	}, nil
}

// ToOrderRows converts a slice of OrderRowDTOs, reporting the index of the
// first malformed row
func ToOrderRows(dtos []OrderRowDTO) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, len(dtos))
	for i, dto := range dtos {
		order, err := ToOrderRow(dto)
		if err != nil {
			return nil, fmt.Errorf("order row %d: %w", i, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// ToOrderRowDTO converts a domain Order to an OrderRowDTO
func ToOrderRowDTO(o domain.Order) OrderRowDTO {
	var orderDate string
	if !o.OrderDate.IsZero() {
		orderDate = o.OrderDate.Format(orderDateLayout)
	}

	return OrderRowDTO{
		OrderNo:          o.OrderNo,
		OrderDate:        orderDate,
		RecipientName:    o.RecipientName,
		RecipientPhone:   o.RecipientPhone,
		Address:          o.Address,
		DetailAddress:    o.DetailAddress,
		ZipCode:          o.ZipCode,
		ProductCode:      o.ProductCode,
		ProductName:      o.ProductName,
		Quantity:         o.Quantity,
		UnitPrice:        formatDecimal(o.UnitPrice),
		TotalPrice:       formatDecimal(o.TotalPrice),
		ShippingType:     o.ShippingType,
		ShippingCenter:   o.ShippingCenter,
		PaymentMethod:    o.PaymentMethod,
		ShippingCost:     formatDecimal(o.ShippingCost),
		BoxSize:          o.BoxSize,
		SpecialNote:      o.SpecialNote,
		ProcessingStatus: o.ProcessingStatus,
		StoreName:        o.StoreName,
		EventType:        o.EventType,
		PriceCategory:    o.PriceCategory,
		Region:           o.Region,
		DeliveryArea:     o.DeliveryArea,
	}
}

// ToManifestDTO converts a domain Manifest to a ManifestDTO
func ToManifestDTO(m *domain.Manifest) *ManifestDTO {
	if m == nil {
		return nil
	}

	orders := make([]OrderRowDTO, 0, len(m.Orders))
	for _, o := range m.Orders {
		orders = append(orders, ToOrderRowDTO(o))
	}

	return &ManifestDTO{
		ManifestID:   m.ManifestID,
		CenterName:   m.CenterName,
		CenterType:   string(m.CenterType),
		ShippingCost: m.ShippingCost.String(),
		Status:       string(m.Status),
		Counts: ManifestCountsDTO{
			Input:        m.Counts.Input,
			Boxed:        m.Counts.Boxed,
			Consolidated: m.Counts.Consolidated,
			Individual:   m.Counts.Individual,
			Dropped:      m.Counts.Dropped,
		},
		Orders:  orders,
		BuiltAt: m.BuiltAt,
	}
}

// ToManifestDTOs converts a slice of domain Manifests to ManifestDTOs
func ToManifestDTOs(manifests []*domain.Manifest) []ManifestDTO {
	dtos := make([]ManifestDTO, 0, len(manifests))
	for _, m := range manifests {
		if dto := ToManifestDTO(m); dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos
}

func parseDecimal(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q: not a decimal number", field, s)
	}
	return d, nil
}

func formatDecimal(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
