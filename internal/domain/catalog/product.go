package catalog

import (
	"strings"
	"time"

	"github.com/chicpic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Product is a catalog product as published by a shop. Products are
// identified within a shop by the original listing id assigned by the
// source platform. A product that disappears from its source is
// soft-deleted, never removed.
type Product struct {
	shared.BaseEntity
	ShopID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_product_shop_original,priority:1"`
	OriginalID  int64      `gorm:"not null;uniqueIndex:idx_product_shop_original,priority:2"`
	Brand       string     `gorm:"type:varchar(30);not null"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	IsDeleted   bool       `gorm:"not null;default:false;index"`
	DeletedAt   *time.Time `gorm:"index"`

	Categories []Category         `gorm:"many2many:product_categories"`
	Attributes []ProductAttribute `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product for a shop
func NewProduct(shopID uuid.UUID, originalID int64, brand, title, description string) (*Product, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Product requires a shop")
	}
	if originalID <= 0 {
		return nil, shared.NewDomainError("INVALID_ORIGINAL_ID", "Product original id must be positive")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		ShopID:      shopID,
		OriginalID:  originalID,
		Brand:       brand,
		Title:       title,
		Description: description,
	}, nil
}

// ApplyListing updates the mutable listing fields from a fresh source run
func (p *Product) ApplyListing(brand, title, description string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}

	p.Brand = brand
	p.Title = title
	p.Description = description
	p.Touch()

	return nil
}

// SoftDelete marks the product as removed from its source
func (p *Product) SoftDelete() {
	if p.IsDeleted {
		return
	}
	now := time.Now()
	p.IsDeleted = true
	p.DeletedAt = &now
	p.Touch()
}

// Restore brings a soft-deleted product back
func (p *Product) Restore() {
	if !p.IsDeleted {
		return
	}
	p.IsDeleted = false
	p.DeletedAt = nil
	p.Touch()
}
