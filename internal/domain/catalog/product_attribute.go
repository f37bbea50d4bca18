package catalog

import (
	"github.com/chicpic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxAttributePositions is the number of option axes a source listing can carry
const MaxAttributePositions = 3

// ProductAttribute links a product to one of its option axes with the
// display position the axis occupies on the listing. A product holds
// each attribute at most once and each position at most once.
type ProductAttribute struct {
	shared.BaseEntity
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_attribute,priority:1;uniqueIndex:idx_product_attr_position,priority:1"`
	AttributeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_attribute,priority:2"`
	Position    int       `gorm:"not null;uniqueIndex:idx_product_attr_position,priority:2"`

	Attribute Attribute `gorm:"foreignKey:AttributeID"`
}

// TableName returns the table name for GORM
func (ProductAttribute) TableName() string {
	return "product_attributes"
}

// NewProductAttribute creates a product to attribute link
func NewProductAttribute(productID, attributeID uuid.UUID, position int) (*ProductAttribute, error) {
	if productID == uuid.Nil || attributeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Product attribute requires product and attribute")
	}
	if position < 1 || position > MaxAttributePositions {
		return nil, shared.NewDomainError("INVALID_POSITION", "Attribute position must be between 1 and 3")
	}

	return &ProductAttribute{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		AttributeID: attributeID,
		Position:    position,
	}, nil
}
