package catalog

import (
	"math"
	"strings"

	"github.com/chicpic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SizingOption is a body dimension a size guide can describe
type SizingOption string

const (
	SizingBust     SizingOption = "Bust"
	SizingWaist    SizingOption = "Waist"
	SizingInseam   SizingOption = "Inseam"
	SizingHips     SizingOption = "Hips"
	SizingShoulder SizingOption = "Shoulder"
	SizingChest    SizingOption = "Chest"
	SizingHeight   SizingOption = "Height"
	SizingNeck     SizingOption = "Neck"
	SizingShoeSize SizingOption = "Shoe Size"
)

// SizingOptions lists every dimension a size guide column may map to
var SizingOptions = []SizingOption{
	SizingBust, SizingWaist, SizingInseam, SizingHips,
	SizingShoulder, SizingChest, SizingHeight, SizingNeck, SizingShoeSize,
}

// ParseSizingOption resolves a size guide column name to a sizing
// option, case-insensitively. Unknown columns are an error so callers
// can skip them.
func ParseSizingOption(name string) (SizingOption, error) {
	for _, opt := range SizingOptions {
		if strings.EqualFold(string(opt), strings.TrimSpace(name)) {
			return opt, nil
		}
	}
	return "", shared.NewDomainError("UNKNOWN_SIZING_OPTION", "No sizing option matches column "+name)
}

// Sizing is a single measured dimension of a variant, derived from the
// shop's size guide. A variant holds each option at most once and the
// full set is recomputed on every ingestion run.
type Sizing struct {
	shared.BaseEntity
	VariantID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_sizing_variant_option,priority:1"`
	Option    SizingOption `gorm:"type:varchar(20);not null;uniqueIndex:idx_sizing_variant_option,priority:2"`
	Value     float64      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Sizing) TableName() string {
	return "sizings"
}

// NewSizing creates a sizing entry, rounding the value to one decimal
func NewSizing(variantID uuid.UUID, option SizingOption, value float64) (*Sizing, error) {
	if variantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Sizing requires a variant")
	}
	if _, err := ParseSizingOption(string(option)); err != nil {
		return nil, err
	}
	if value <= 0 {
		return nil, shared.NewDomainError("INVALID_VALUE", "Sizing value must be positive")
	}

	return &Sizing{
		BaseEntity: shared.NewBaseEntity(),
		VariantID:  variantID,
		Option:     option,
		Value:      math.Round(value*10) / 10,
	}, nil
}
