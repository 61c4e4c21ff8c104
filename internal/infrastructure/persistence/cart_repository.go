package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storefront/backend/internal/domain/cart"
)

// cartRecord is the storage row for one cart. The whole cart, items and
// selection included, is serialized into Document and replaced on every
// save.
type cartRecord struct {
	Key       string `gorm:"primaryKey;size:100"`
	Document  string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName overrides the table name used by GORM
func (cartRecord) TableName() string {
	return "carts"
}

// cartDocument is the JSON shape stored in cartRecord.Document.
// Prices are stored as strings to keep decimal precision.
type cartDocument struct {
	Items    []cartDocumentItem `json:"items"`
	Selected map[string]bool    `json:"selected"`
}

type cartDocumentItem struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	UnitPrice string `json:"unit_price"`
	Image     string `json:"image"`
	Quantity  int64  `json:"quantity"`
}

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Load reads the cart stored under the key. A key with no stored state
// yields an empty cart, not an error.
func (r *GormCartRepository) Load(ctx context.Context, key string) (*cart.Cart, error) {
	var record cartRecord
	if err := r.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cart.NewCart(key), nil
		}
		return nil, err
	}

	var doc cartDocument
	if err := json.Unmarshal([]byte(record.Document), &doc); err != nil {
		return nil, fmt.Errorf("corrupt cart document for key %q: %w", key, err)
	}

	items := make([]cart.LineItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		price, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("corrupt cart document for key %q: %w", key, err)
		}
		items = append(items, cart.LineItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			UnitPrice: price,
			Image:     item.Image,
			Quantity:  item.Quantity,
		})
	}

	return cart.Rehydrate(key, items, doc.Selected), nil
}

// Save replaces the stored state for the cart's key wholesale
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	doc := cartDocument{
		Items:    make([]cartDocumentItem, 0, len(c.Items)),
		Selected: c.Selected,
	}
	for _, item := range c.Items {
		doc.Items = append(doc.Items, cartDocumentItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			UnitPrice: item.UnitPrice.String(),
			Image:     item.Image,
			Quantity:  item.Quantity,
		})
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode cart document: %w", err)
	}

	record := cartRecord{
		Key:       c.Key,
		Document:  string(payload),
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&record).Error
}
