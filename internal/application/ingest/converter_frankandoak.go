package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chicpic/backend/internal/domain/catalog"
	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"go.uber.org/zap"
)

// FrankAndOakConverter converts Frank and Oak listings. Footwear sizes
// below the EU range are already US shoe sizes, and men's bottoms
// encode waist and inseam in a WxL size like "32X30".
type FrankAndOakConverter struct {
	*baseConverter
}

// NewFrankAndOakConverter creates the Frank and Oak converter strategy
func NewFrankAndOakConverter(ref *refdata.Store, log *zap.Logger) *FrankAndOakConverter {
	return &FrankAndOakConverter{baseConverter: newBaseConverter(SourceFrankAndOak, ref, log)}
}

// ConvertSizings handles the footwear and men's bottoms guides specially
func (c *FrankAndOakConverter) ConvertSizings(parsed *ParsedProduct, variant *catalog.Variant) ([]catalog.Sizing, error) {
	if variant.Size == nil {
		return c.baseConverter.ConvertSizings(parsed, variant)
	}

	switch parsed.SizeGuideKey {
	case "Men-Footwear", "Women-Footwear":
		return c.convertFootwear(parsed, variant)
	case "Men-Bottoms":
		size := *variant.Size
		if len(size) > 2 && size[2] == 'X' {
			return c.convertMenBottoms(variant, size)
		}
	}
	return c.baseConverter.ConvertSizings(parsed, variant)
}

// convertFootwear takes sizes up to 30 as US shoe sizes directly;
// larger values are EU sizes and go through the size guide.
func (c *FrankAndOakConverter) convertFootwear(parsed *ParsedProduct, variant *catalog.Variant) ([]catalog.Sizing, error) {
	size, err := strconv.ParseFloat(*variant.Size, 64)
	if err != nil {
		return nil, fmt.Errorf("variant %d has unparsable shoe size %q: %w", variant.OriginalID, *variant.Size, err)
	}

	if size > 30 {
		return c.baseConverter.ConvertSizings(parsed, variant)
	}

	return sizingsFor(variant.ID, map[catalog.SizingOption]float64{
		catalog.SizingShoeSize: size,
	}), nil
}

// convertMenBottoms splits a WxL size into waist and inseam inches
func (c *FrankAndOakConverter) convertMenBottoms(variant *catalog.Variant, size string) ([]catalog.Sizing, error) {
	parts := strings.SplitN(size, "X", 2)

	waist, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("variant %d has unparsable waist in size %q: %w", variant.OriginalID, size, err)
	}
	inseam, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("variant %d has unparsable inseam in size %q: %w", variant.OriginalID, size, err)
	}

	return sizingsFor(variant.ID, map[catalog.SizingOption]float64{
		catalog.SizingWaist:  waist * inchToCm,
		catalog.SizingInseam: inseam * inchToCm,
	}), nil
}
