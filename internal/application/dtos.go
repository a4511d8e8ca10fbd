package application

import "time"

// OrderRowDTO represents a single order row on the wire. Monetary amounts
// travel as decimal strings.
type OrderRowDTO struct {
	OrderNo          string `json:"orderNo"`
	OrderDate        string `json:"orderDate,omitempty"`
	RecipientName    string `json:"recipientName"`
	RecipientPhone   string `json:"recipientPhone,omitempty"`
	Address          string `json:"address"`
	DetailAddress    string `json:"detailAddress,omitempty"`
	ZipCode          string `json:"zipCode,omitempty"`
	ProductCode      string `json:"productCode,omitempty"`
	ProductName      string `json:"productName,omitempty"`
	Quantity         int    `json:"quantity"`
	UnitPrice        string `json:"unitPrice,omitempty"`
	TotalPrice       string `json:"totalPrice,omitempty"`
	ShippingType     string `json:"shippingType,omitempty"`
	ShippingCenter   string `json:"shippingCenter,omitempty"`
	PaymentMethod    string `json:"paymentMethod,omitempty"`
	ShippingCost     string `json:"shippingCost,omitempty"`
	BoxSize          string `json:"boxSize,omitempty"`
	SpecialNote      string `json:"specialNote,omitempty"`
	ProcessingStatus string `json:"processingStatus,omitempty"`
	StoreName        string `json:"storeName,omitempty"`
	EventType        string `json:"eventType,omitempty"`
	PriceCategory    string `json:"priceCategory,omitempty"`
	Region           string `json:"region,omitempty"`
	DeliveryArea     string `json:"deliveryArea,omitempty"`
}

// ManifestCountsDTO breaks down the manifest row composition
type ManifestCountsDTO struct {
	Input        int `json:"input"`
	Boxed        int `json:"boxed"`
	Consolidated int `json:"consolidated"`
	Individual   int `json:"individual"`
	Dropped      int `json:"dropped"`
}

// ManifestDTO represents a built manifest in responses
type ManifestDTO struct {
	ManifestID   string            `json:"manifestId"`
	CenterName   string            `json:"centerName"`
	CenterType   string            `json:"centerType"`
	ShippingCost string            `json:"shippingCost"`
	Status       string            `json:"status"`
	Counts       ManifestCountsDTO `json:"counts"`
	Orders       []OrderRowDTO     `json:"orders"`
	BuiltAt      time.Time         `json:"builtAt"`
}
