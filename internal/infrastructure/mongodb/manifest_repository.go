package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dcms-platform/manifest-service/internal/domain"
)

// ManifestRepository persists manifests in MongoDB. Monetary amounts are
// stored as decimal strings; the driver has no codec for decimal.Decimal.
type ManifestRepository struct {
	collection *mongo.Collection
}

func NewManifestRepository(db *mongo.Database) *ManifestRepository {
	repo := &ManifestRepository{
		collection: db.Collection("manifests"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ManifestRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "manifestId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "centerName", Value: 1}}},
		{Keys: bson.D{{Key: "builtAt", Value: -1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *ManifestRepository) Save(ctx context.Context, manifest *domain.Manifest) error {
	doc, err := toManifestDocument(manifest)
	if err != nil {
		return err
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"manifestId": manifest.ManifestID}
	update := bson.M{"$set": doc}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}

	manifest.ClearDomainEvents()
	return nil
}

func (r *ManifestRepository) FindByID(ctx context.Context, manifestID string) (*domain.Manifest, error) {
	var doc manifestDocument
	err := r.collection.FindOne(ctx, bson.M{"manifestId": manifestID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain()
}

func (r *ManifestRepository) FindByCenter(ctx context.Context, centerName string, limit int) ([]*domain.Manifest, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "builtAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"centerName": centerName}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []manifestDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	manifests := make([]*domain.Manifest, 0, len(docs))
	for _, doc := range docs {
		m, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
	}
	return manifests, nil
}

func (r *ManifestRepository) Delete(ctx context.Context, manifestID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"manifestId": manifestID})
	return err
}

// Persistence documents

type manifestDocument struct {
	ManifestID   string          `bson:"manifestId"`
	CenterName   string          `bson:"centerName"`
	CenterType   string          `bson:"centerType"`
	ShippingCost string          `bson:"shippingCost"`
	Orders       []orderDocument `bson:"orders"`
	Counts       countsDocument  `bson:"counts"`
	Status       string          `bson:"status"`
	BuiltAt      time.Time       `bson:"builtAt"`
}

type countsDocument struct {
	Input        int `bson:"input"`
	Boxed        int `bson:"boxed"`
	Consolidated int `bson:"consolidated"`
	Individual   int `bson:"individual"`
	Dropped      int `bson:"dropped"`
}

type orderDocument struct {
	OrderNo          string    `bson:"orderNo"`
	OrderDate        time.Time `bson:"orderDate,omitempty"`
	RecipientName    string    `bson:"recipientName"`
	RecipientPhone   string    `bson:"recipientPhone,omitempty"`
	Address          string    `bson:"address"`
	DetailAddress    string    `bson:"detailAddress,omitempty"`
	ZipCode          string    `bson:"zipCode,omitempty"`
	ProductCode      string    `bson:"productCode,omitempty"`
	ProductName      string    `bson:"productName,omitempty"`
	Quantity         int       `bson:"quantity"`
	UnitPrice        string    `bson:"unitPrice,omitempty"`
	TotalPrice       string    `bson:"totalPrice,omitempty"`
	ShippingType     string    `bson:"shippingType,omitempty"`
	ShippingCenter   string    `bson:"shippingCenter,omitempty"`
	PaymentMethod    string    `bson:"paymentMethod,omitempty"`
	ShippingCost     string    `bson:"shippingCost,omitempty"`
	BoxSize          string    `bson:"boxSize,omitempty"`
	SpecialNote      string    `bson:"specialNote,omitempty"`
	ProcessingStatus string    `bson:"processingStatus,omitempty"`
	StoreName        string    `bson:"storeName,omitempty"`
	EventType        string    `bson:"eventType,omitempty"`
	PriceCategory    string    `bson:"priceCategory,omitempty"`
	Region           string    `bson:"region,omitempty"`
	DeliveryArea     string    `bson:"deliveryArea,omitempty"`
}

func toManifestDocument(m *domain.Manifest) (*manifestDocument, error) {
	orders := make([]orderDocument, 0, len(m.Orders))
	for _, o := range m.Orders {
		orders = append(orders, toOrderDocument(o))
	}

	return &manifestDocument{
		ManifestID:   m.ManifestID,
		CenterName:   m.CenterName,
		CenterType:   string(m.CenterType),
		ShippingCost: m.ShippingCost.String(),
		Orders:       orders,
		Counts: countsDocument{
			Input:        m.Counts.Input,
			Boxed:        m.Counts.Boxed,
			Consolidated: m.Counts.Consolidated,
			Individual:   m.Counts.Individual,
			Dropped:      m.Counts.Dropped,
		},
		Status:  string(m.Status),
		BuiltAt: m.BuiltAt,
	}, nil
}

func toOrderDocument(o domain.Order) orderDocument {
	return orderDocument{
		OrderNo:          o.OrderNo,
		OrderDate:        o.OrderDate,
		RecipientName:    o.RecipientName,
		RecipientPhone:   o.RecipientPhone,
		Address:          o.Address,
		DetailAddress:    o.DetailAddress,
		ZipCode:          o.ZipCode,
		ProductCode:      o.ProductCode,
		ProductName:      o.ProductName,
		Quantity:         o.Quantity,
		UnitPrice:        encodeDecimal(o.UnitPrice),
		TotalPrice:       encodeDecimal(o.TotalPrice),
		ShippingType:     o.ShippingType,
		ShippingCenter:   o.ShippingCenter,
		PaymentMethod:    o.PaymentMethod,
		ShippingCost:     encodeDecimal(o.ShippingCost),
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

func (d *manifestDocument) toDomain() (*domain.Manifest, error) {
	shippingCost, err := decodeDecimal(d.ShippingCost, "shippingCost")
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(d.Orders))
	for _, od := range d.Orders {
		o, err := od.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return &domain.Manifest{
		ManifestID:   d.ManifestID,
		CenterName:   d.CenterName,
		CenterType:   domain.CenterType(d.CenterType),
		ShippingCost: shippingCost,
		Orders:       orders,
		Counts: domain.ManifestCounts{
			Input:        d.Counts.Input,
			Boxed:        d.Counts.Boxed,
			Consolidated: d.Counts.Consolidated,
			Individual:   d.Counts.Individual,
			Dropped:      d.Counts.Dropped,
		},
		Status:  domain.ManifestStatus(d.Status),
		BuiltAt: d.BuiltAt,
	}, nil
}

func (d orderDocument) toDomain() (domain.Order, error) {
	unitPrice, err := decodeDecimal(d.UnitPrice, "unitPrice")
	if err != nil {
		return domain.Order{}, err
	}
	totalPrice, err := decodeDecimal(d.TotalPrice, "totalPrice")
	if err != nil {
		return domain.Order{}, err
	}
	shippingCost, err := decodeDecimal(d.ShippingCost, "shippingCost")
	if err != nil {
		return domain.Order{}, err
	}

	return domain.Order{
		OrderNo:          d.OrderNo,
		OrderDate:        d.OrderDate,
		RecipientName:    d.RecipientName,
		RecipientPhone:   d.RecipientPhone,
		Address:          d.Address,
		DetailAddress:    d.DetailAddress,
		ZipCode:          d.ZipCode,
		ProductCode:      d.ProductCode,
		ProductName:      d.ProductName,
		Quantity:         d.Quantity,
		UnitPrice:        unitPrice,
		TotalPrice:       totalPrice,
		ShippingType:     d.ShippingType,
		ShippingCenter:   d.ShippingCenter,
		PaymentMethod:    d.PaymentMethod,
		ShippingCost:     shippingCost,
		BoxSize:          d.BoxSize,
		SpecialNote:      d.SpecialNote,
		ProcessingStatus: d.ProcessingStatus,
		StoreName:        d.StoreName,
		EventType:        d.EventType,
		PriceCategory:    d.PriceCategory,
		Region:           d.Region,
		DeliveryArea:     d.DeliveryArea,
	}, nil
}

func encodeDecimal(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func decodeDecimal(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("corrupt %s value %q: %w", field, s, err)
	}
	return d, nil
}
