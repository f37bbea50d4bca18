package ingest

import (
	"fmt"
	"strconv"

	"github.com/chicpic/backend/internal/domain/catalog"
	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"go.uber.org/zap"
)

// ReebokConverter converts Reebok listings. Shoe sizes are already US
// sizes and bypass the size guide.
type ReebokConverter struct {
	*baseConverter
}

// NewReebokConverter creates the Reebok converter strategy
func NewReebokConverter(ref *refdata.Store, log *zap.Logger) *ReebokConverter {
	return &ReebokConverter{baseConverter: newBaseConverter(SourceReebok, ref, log)}
}

// ConvertSizings takes footwear sizes as US shoe sizes directly
func (c *ReebokConverter) ConvertSizings(parsed *ParsedProduct, variant *catalog.Variant) ([]catalog.Sizing, error) {
	switch parsed.SizeGuideKey {
	case "Men-Shoes", "Women-Shoes":
		if variant.Size == nil {
			return nil, nil
		}
		size, err := strconv.ParseFloat(*variant.Size, 64)
		if err != nil {
			return nil, fmt.Errorf("variant %d has unparsable shoe size %q: %w", variant.OriginalID, *variant.Size, err)
		}
		return sizingsFor(variant.ID, map[catalog.SizingOption]float64{
			catalog.SizingShoeSize: size,
		}), nil
	}
	return c.baseConverter.ConvertSizings(parsed, variant)
}
