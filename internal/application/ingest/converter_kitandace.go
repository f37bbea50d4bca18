package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chicpic/backend/internal/domain/catalog"
	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KitAndAceConverter converts Kit and Ace listings. Variant colors
// arrive as names and resolve through the shop's color map, and the
// bottoms size guides need derived measurements instead of plain
// column lookups.
type KitAndAceConverter struct {
	*baseConverter
}

// NewKitAndAceConverter creates the Kit and Ace converter strategy
func NewKitAndAceConverter(ref *refdata.Store, log *zap.Logger) *KitAndAceConverter {
	return &KitAndAceConverter{baseConverter: newBaseConverter(SourceKitAndAce, ref, log)}
}

// ConvertVariant resolves the parsed color name through the shop's
// color map before building the variant. An unmapped name leaves the
// color unset.
func (c *KitAndAceConverter) ConvertVariant(parsed *ParsedVariant, productID uuid.UUID) (*catalog.Variant, error) {
	colorHex, err := c.convertColor(parsed.ColorHex)
	if err != nil {
		return nil, err
	}

	return catalog.NewVariant(productID, parsed.VariantID, parsed.Image.Src, parsed.Link,
		parsed.OriginalPrice, parsed.FinalPrice, parsed.Available,
		colorHex, parsed.Size, parsed.Option1, parsed.Option2)
}

func (c *KitAndAceConverter) convertColor(name *string) (*string, error) {
	if name == nil {
		return nil, nil
	}

	colorMap, err := c.ref.ColorMap(c.source.Name)
	if err != nil {
		return nil, err
	}

	hex, ok := colorMap[*name]
	if !ok {
		return nil, nil
	}
	return &hex, nil
}

// ConvertSizings handles the bottoms guides specially. Men's bottoms
// sizes are waist inches and the Length option the inseam; women's
// tall sizes carry a T suffix and read the Tall Inseam column.
func (c *KitAndAceConverter) ConvertSizings(parsed *ParsedProduct, variant *catalog.Variant) ([]catalog.Sizing, error) {
	if variant.Size == nil {
		return c.baseConverter.ConvertSizings(parsed, variant)
	}

	switch parsed.SizeGuideKey {
	case "Men-Bottoms":
		return c.convertMenBottoms(parsed, variant)
	case "Women-Bottoms":
		if strings.Contains(*variant.Size, "T") {
			return c.convertWomenTallBottoms(parsed, variant)
		}
	}
	return c.baseConverter.ConvertSizings(parsed, variant)
}

// convertMenBottoms derives waist and inseam from the size and Length
// option, both inch values, and reads hips from the size guide row.
func (c *KitAndAceConverter) convertMenBottoms(parsed *ParsedProduct, variant *catalog.Variant) ([]catalog.Sizing, error) {
	lengthPos := parsed.AttributePosition("Length")
	length := optionAt(variant, lengthPos)
	if lengthPos == 0 || length == nil || len(*length) < 2 {
		return c.baseConverter.ConvertSizings(parsed, variant)
	}

	guide, err := c.ref.SizeGuide(c.source.Name, parsed.SizeGuideKey)
	if err != nil {
		return nil, err
	}
	row, ok := guide.RowForSize(*variant.Size)
	if !ok {
		return nil, nil
	}

	waist, err := strconv.ParseFloat(*variant.Size, 64)
	if err != nil {
		return nil, fmt.Errorf("variant %d has unparsable waist size %q: %w", variant.OriginalID, *variant.Size, err)
	}
	inseam, err := strconv.ParseFloat((*length)[:2], 64)
	if err != nil {
		return nil, fmt.Errorf("variant %d has unparsable length option %q: %w", variant.OriginalID, *length, err)
	}

	pairs := map[catalog.SizingOption]float64{
		catalog.SizingWaist:  waist * inchToCm,
		catalog.SizingInseam: inseam * inchToCm,
	}
	if hips, err := parseSizeCell(row["Hips"]); err == nil {
		pairs[catalog.SizingHips] = hips
	}

	return sizingsFor(variant.ID, pairs), nil
}

// convertWomenTallBottoms looks the size up without its T suffix and
// reads the inseam from the Tall Inseam column.
func (c *KitAndAceConverter) convertWomenTallBottoms(parsed *ParsedProduct, variant *catalog.Variant) ([]catalog.Sizing, error) {
	guide, err := c.ref.SizeGuide(c.source.Name, parsed.SizeGuideKey)
	if err != nil {
		return nil, err
	}

	size := *variant.Size
	row, ok := guide.RowForSize(size[:len(size)-1])
	if !ok {
		return nil, nil
	}

	pairs := make(map[catalog.SizingOption]float64, 3)
	if waist, err := parseSizeCell(row["Waist"]); err == nil {
		pairs[catalog.SizingWaist] = waist
	}
	if hips, err := parseSizeCell(row["Hips"]); err == nil {
		pairs[catalog.SizingHips] = hips
	}
	if inseam, err := parseSizeCell(row["Tall Inseam"]); err == nil {
		pairs[catalog.SizingInseam] = inseam
	}

	return sizingsFor(variant.ID, pairs), nil
}
