package catalog

import (
	"strings"

	"github.com/chicpic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variant is a purchasable configuration of a product. Variants are
// identified by the original variant id assigned by the source
// platform, which is unique across all shops.
type Variant struct {
	shared.BaseEntity
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	OriginalID    int64           `gorm:"not null;uniqueIndex"`
	ImageSrc      string          `gorm:"type:varchar(300);not null"`
	Link          string          `gorm:"type:varchar(300);not null"`
	OriginalPrice decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	FinalPrice    decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	IsAvailable   bool            `gorm:"not null"`
	ColorHex      *string         `gorm:"type:varchar(30)"`
	Size          *string         `gorm:"type:varchar(20)"`
	Option1       *string         `gorm:"type:varchar(50)"`
	Option2       *string         `gorm:"type:varchar(50)"`

	Sizings []Sizing `gorm:"foreignKey:VariantID"`
}

// TableName returns the table name for GORM
func (Variant) TableName() string {
	return "variants"
}

// NewVariant creates a new variant of a product
func NewVariant(productID uuid.UUID, originalID int64, imageSrc, link string,
	originalPrice, finalPrice decimal.Decimal, isAvailable bool,
	colorHex, size, option1, option2 *string) (*Variant, error) {

	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Variant requires a product")
	}
	if originalID <= 0 {
		return nil, shared.NewDomainError("INVALID_ORIGINAL_ID", "Variant original id must be positive")
	}
	if strings.TrimSpace(imageSrc) == "" {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Variant image source cannot be empty")
	}
	if finalPrice.IsNegative() || originalPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Variant prices cannot be negative")
	}
	if originalPrice.LessThan(finalPrice) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Original price cannot be below final price")
	}

	return &Variant{
		BaseEntity:    shared.NewBaseEntity(),
		ProductID:     productID,
		OriginalID:    originalID,
		ImageSrc:      imageSrc,
		Link:          link,
		OriginalPrice: originalPrice,
		FinalPrice:    finalPrice,
		IsAvailable:   isAvailable,
		ColorHex:      colorHex,
		Size:          size,
		Option1:       option1,
		Option2:       option2,
	}, nil
}

// ApplyListing updates the mutable listing fields from a fresh source run
func (v *Variant) ApplyListing(other *Variant) {
	v.ImageSrc = other.ImageSrc
	v.Link = other.Link
	v.OriginalPrice = other.OriginalPrice
	v.FinalPrice = other.FinalPrice
	v.IsAvailable = other.IsAvailable
	v.ColorHex = other.ColorHex
	v.Size = other.Size
	v.Option1 = other.Option1
	v.Option2 = other.Option2
	v.Touch()
}

// IsDiscounted reports whether the variant is currently on sale
func (v *Variant) IsDiscounted() bool {
	return v.FinalPrice.LessThan(v.OriginalPrice)
}
