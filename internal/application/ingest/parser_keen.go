package ingest

import (
	"fmt"
	"strings"

	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"go.uber.org/zap"
)

// KeenParser normalizes Keen listings. Only footwear is in scope;
// gender, color and the size guide all come from structured tags.
type KeenParser struct {
	*baseParser
}

// NewKeenParser creates the Keen parser strategy
func NewKeenParser(ref *refdata.Store, log *zap.Logger) (*KeenParser, error) {
	base, err := newBaseParser(SourceKeen, ref, log, GenderPolicyReject,
		[]string{"Accessories"},
		[]string{},
	)
	if err != nil {
		return nil, err
	}
	return &KeenParser{baseParser: base}, nil
}

// IsUnacceptable additionally excludes the kids' lines
func (p *KeenParser) IsUnacceptable(raw *RawProduct) bool {
	if strings.HasPrefix(strings.ToLower(raw.ProductType), "kid") {
		return true
	}
	return p.baseParser.IsUnacceptable(raw)
}

// ParseProduct normalizes a single Keen listing
func (p *KeenParser) ParseProduct(raw *RawProduct) (*ParsedProduct, error) {
	genders, err := p.resolveGenders(p.genders(raw))
	if err != nil {
		return nil, err
	}

	sizeGuideKey, err := p.sizeGuideKey(raw)
	if err != nil {
		return nil, err
	}

	variants, err := p.parseVariants(raw)
	if err != nil {
		return nil, err
	}

	return &ParsedProduct{
		ProductID:    raw.ID,
		Title:        raw.Title,
		Categories:   []string{"Footwear"},
		Description:  p.description(raw),
		Tags:         raw.Tags,
		Brand:        p.brand(raw),
		SizeGuideKey: sizeGuideKey,
		Genders:      genders,
		Variants:     variants,
		Attributes:   p.parseAttributes(raw),
	}, nil
}

// genders derives the gender set from gender: tags
func (p *KeenParser) genders(raw *RawProduct) []string {
	values := tagValues(raw.Tags, "gender:")
	if contains(values, "All Gender") {
		return []string{"Men", "Women"}
	}
	if len(values) == 0 {
		return nil
	}
	switch values[0] {
	case "Women's":
		return []string{"Women"}
	case "Men's":
		return []string{"Men"}
	}
	return nil
}

// sizeGuideKey maps the size_guide: tag onto a guide name. The all
// gender guide matches the men's sizing.
func (p *KeenParser) sizeGuideKey(raw *RawProduct) (string, error) {
	values := tagValues(raw.Tags, "size_guide:")
	if len(values) == 0 {
		return "", fmt.Errorf("product %d carries no size guide tag", raw.ID)
	}
	switch values[0] {
	case "womens":
		return "Women-Footwear", nil
	case "mens", "all gender":
		return "Men-Footwear", nil
	}
	return "", nil
}

// colorHex resolves the filtercolor: tags through the shop's color map
// and joins up to three of them. Names mapped to an empty value are
// placeholders and skipped.
func (p *KeenParser) colorHex(raw *RawProduct) (*string, error) {
	colorMap, err := p.ref.ColorMap(p.source.Name)
	if err != nil {
		return nil, err
	}

	var hexes []string
	for _, name := range tagValues(raw.Tags, "filtercolor:") {
		hex, ok := colorMap[name]
		if !ok {
			return nil, fmt.Errorf("product %d has unmapped color %q", raw.ID, name)
		}
		if hex == "" {
			continue
		}
		hexes = append(hexes, hex)
		if len(hexes) == 3 {
			break
		}
	}

	if len(hexes) == 0 {
		return nil, nil
	}
	joined := strings.Join(hexes, "/")
	return &joined, nil
}

// parseVariants normalizes the listing's variants
func (p *KeenParser) parseVariants(raw *RawProduct) ([]ParsedVariant, error) {
	colorPos := p.colorOptionPosition(raw)
	sizePos := p.sizeOptionPosition(raw)
	free := availablePositions(colorPos, sizePos)

	colorHex, err := p.colorHex(raw)
	if err != nil {
		return nil, err
	}

	variants := make([]ParsedVariant, 0, len(raw.Variants))
	for i := range raw.Variants {
		rv := &raw.Variants[i]

		original, final, err := pricePair(rv)
		if err != nil {
			return nil, err
		}

		var size *string
		if sizePos != 0 {
			size = rv.OptionValue(sizePos)
		}

		image, err := variantImage(raw, rv)
		if err != nil {
			return nil, err
		}

		variants = append(variants, ParsedVariant{
			VariantID:     rv.ID,
			ProductID:     rv.ProductID,
			Available:     rv.Available,
			OriginalPrice: original,
			FinalPrice:    final,
			Option1:       rv.OptionValue(free[0]),
			ColorHex:      colorHex,
			Size:          size,
			Link:          fmt.Sprintf("%sproducts/%s", p.source.Website, raw.Handle),
			Image: ParsedImage{
				Src:    image.Src,
				Width:  image.Width,
				Height: image.Height,
			},
		})
	}

	return variants, nil
}
