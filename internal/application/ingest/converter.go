package ingest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chicpic/backend/internal/domain/catalog"
	"github.com/chicpic/backend/internal/domain/shared"
	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// inchToCm converts inch measurements to the centimeters size guides use
const inchToCm = 2.54

// Converter turns parsed listings of one source into catalog entities.
// Most sources use the shared behavior of baseConverter unchanged; a
// source whose size guides or colors need special handling overrides
// the relevant method.
type Converter interface {
	// Source returns the source the converter handles
	Source() Source

	// ConvertProduct builds the product entity for a parsed listing
	ConvertProduct(parsed *ParsedProduct, shopID uuid.UUID) (*catalog.Product, error)

	// ConvertVariant builds the variant entity for a parsed variant
	ConvertVariant(parsed *ParsedVariant, productID uuid.UUID) (*catalog.Variant, error)

	// ConvertCategories resolves the parsed category titles, crossed
	// with the listing's genders, to seeded canonical categories. A
	// title or gender with no mapping is logged and omitted.
	ConvertCategories(ctx context.Context, parsed *ParsedProduct, categories catalog.CategoryRepository) ([]catalog.Category, error)

	// ConvertAttribute resolves an attribute name to the existing
	// attribute, or builds a new one when none matches.
	ConvertAttribute(ctx context.Context, name string, attributes catalog.AttributeRepository) (*catalog.Attribute, error)

	// ConvertSizings derives the sizing entries of a variant from the
	// listing's size guide.
	ConvertSizings(parsed *ParsedProduct, variant *catalog.Variant) ([]catalog.Sizing, error)
}

// baseConverter carries the conversion behavior every source shares
type baseConverter struct {
	source Source
	ref    *refdata.Store
	log    *zap.Logger
}

func newBaseConverter(source Source, ref *refdata.Store, log *zap.Logger) *baseConverter {
	return &baseConverter{
		source: source,
		ref:    ref,
		log:    log.Named("converter").With(zap.String("shop", source.Name)),
	}
}

// Source returns the source the converter handles
func (c *baseConverter) Source() Source {
	return c.source
}

// ConvertProduct builds the product entity for a parsed listing
func (c *baseConverter) ConvertProduct(parsed *ParsedProduct, shopID uuid.UUID) (*catalog.Product, error) {
	return catalog.NewProduct(shopID, parsed.ProductID, parsed.Brand, parsed.Title, parsed.Description)
}

// ConvertVariant builds the variant entity for a parsed variant
func (c *baseConverter) ConvertVariant(parsed *ParsedVariant, productID uuid.UUID) (*catalog.Variant, error) {
	return catalog.NewVariant(productID, parsed.VariantID, parsed.Image.Src, parsed.Link,
		parsed.OriginalPrice, parsed.FinalPrice, parsed.Available,
		parsed.ColorHex, parsed.Size, parsed.Option1, parsed.Option2)
}

// ConvertCategories resolves the parsed category titles, crossed with
// the listing's genders, to seeded canonical categories. Categories are
// deduplicated; a miss in the mapping table or among the seeded
// categories is logged and the pair omitted.
func (c *baseConverter) ConvertCategories(ctx context.Context, parsed *ParsedProduct,
	categories catalog.CategoryRepository) ([]catalog.Category, error) {

	mappings, err := c.ref.CategoryMappings(c.source.Name)
	if err != nil {
		return nil, err
	}

	var resolved []catalog.Category
	seen := make(map[uuid.UUID]bool)

	for _, title := range parsed.Categories {
		for _, genderName := range parsed.Genders {
			mapping, ok := findMapping(mappings, title, genderName)
			if !ok {
				c.log.Warn("No category mapping",
					zap.String("title", title),
					zap.String("gender", genderName),
				)
				continue
			}

			gender, err := catalog.ParseGender(mapping.Gender)
			if err != nil {
				return nil, fmt.Errorf("category mapping for %q: %w", title, err)
			}

			category, err := categories.FindByTitleAndGender(ctx, mapping.CanonicalTitle, gender)
			if errors.Is(err, shared.ErrNotFound) {
				c.log.Warn("Mapped category is not seeded",
					zap.String("title", mapping.CanonicalTitle),
					zap.String("gender", genderName),
				)
				continue
			}
			if err != nil {
				return nil, err
			}

			if !seen[category.ID] {
				seen[category.ID] = true
				resolved = append(resolved, *category)
			}
		}
	}

	return resolved, nil
}

func findMapping(mappings []refdata.CategoryMapping, title, gender string) (refdata.CategoryMapping, bool) {
	for _, m := range mappings {
		if m.Title == title && m.Gender == gender {
			return m, true
		}
	}
	return refdata.CategoryMapping{}, false
}

// ConvertAttribute resolves an attribute name to the existing attribute
// or builds a new one when none matches.
func (c *baseConverter) ConvertAttribute(ctx context.Context, name string,
	attributes catalog.AttributeRepository) (*catalog.Attribute, error) {

	attribute, err := attributes.FindByName(ctx, name)
	if errors.Is(err, shared.ErrNotFound) {
		return catalog.NewAttribute(name)
	}
	if err != nil {
		return nil, err
	}
	return attribute, nil
}

// ConvertSizings derives the sizing entries of a variant by looking its
// size up in the listing's size guide. A listing without a size guide,
// or a size absent from the guide, yields no sizings. Columns that do
// not name a known dimension and cells that do not parse are skipped.
func (c *baseConverter) ConvertSizings(parsed *ParsedProduct, variant *catalog.Variant) ([]catalog.Sizing, error) {
	if parsed.SizeGuideKey == "" || variant.Size == nil {
		return nil, nil
	}

	guide, err := c.ref.SizeGuide(c.source.Name, parsed.SizeGuideKey)
	if err != nil {
		return nil, err
	}

	row, ok := guide.RowForSize(*variant.Size)
	if !ok {
		return nil, nil
	}

	var sizings []catalog.Sizing
	for _, column := range guide.DimensionColumns() {
		option, err := catalog.ParseSizingOption(column)
		if err != nil {
			continue
		}

		value, err := parseSizeCell(row[column])
		if err != nil {
			continue
		}

		sizing, err := catalog.NewSizing(variant.ID, option, value)
		if err != nil {
			continue
		}
		sizings = append(sizings, *sizing)
	}

	return sizings, nil
}

// parseSizeCell parses one size guide cell. A range like "34-36" or an
// alternative like "34/36" yields the average of its parts.
func parseSizeCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)

	separator := ""
	if strings.Contains(cell, "-") {
		separator = "-"
	} else if strings.Contains(cell, "/") {
		separator = "/"
	}

	if separator == "" {
		return strconv.ParseFloat(cell, 64)
	}

	parts := strings.Split(cell, separator)
	sum := 0.0
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum / float64(len(parts)), nil
}

// optionAt returns the variant option value stored at a 1-based
// attribute position.
func optionAt(variant *catalog.Variant, position int) *string {
	switch position {
	case 1:
		return variant.Option1
	case 2:
		return variant.Option2
	default:
		return nil
	}
}

// sizingsFor builds sizing entries from option and value pairs,
// skipping pairs whose value is not usable.
func sizingsFor(variantID uuid.UUID, pairs map[catalog.SizingOption]float64) []catalog.Sizing {
	var sizings []catalog.Sizing
	for _, option := range catalog.SizingOptions {
		value, ok := pairs[option]
		if !ok {
			continue
		}
		sizing, err := catalog.NewSizing(variantID, option, value)
		if err != nil {
			continue
		}
		sizings = append(sizings, *sizing)
	}
	return sizings
}
