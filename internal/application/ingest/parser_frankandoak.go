package ingest

import (
	"fmt"

	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"go.uber.org/zap"
)

// FrankAndOakParser normalizes Frank and Oak listings. Gender comes
// from division tags and the product color from a color_hex tag.
// Listings tagged with more than one gender are excluded because the
// source publishes a single size guide per gender.
type FrankAndOakParser struct {
	*baseParser
}

// NewFrankAndOakParser creates the Frank and Oak parser strategy
func NewFrankAndOakParser(ref *refdata.Store, log *zap.Logger) (*FrankAndOakParser, error) {
	base, err := newBaseParser(SourceFrankAndOak, ref, log, GenderPolicyAllowNone,
		[]string{"", "Lifestyle", "Bodywear", "Swimwear", "Accessories", "Gift Card", "Grooming", "Insurance"},
		[]string{},
	)
	if err != nil {
		return nil, err
	}
	return &FrankAndOakParser{baseParser: base}, nil
}

// IsUnacceptable additionally excludes multi-gender listings
func (p *FrankAndOakParser) IsUnacceptable(raw *RawProduct) bool {
	if len(p.genders(raw)) > 1 {
		return true
	}
	return p.baseParser.IsUnacceptable(raw)
}

// ParseProduct normalizes a single Frank and Oak listing
func (p *FrankAndOakParser) ParseProduct(raw *RawProduct) (*ParsedProduct, error) {
	genders, err := p.resolveGenders(p.genders(raw))
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
		Categories:   []string{raw.ProductType},
		Description:  p.description(raw),
		Tags:         raw.Tags,
		Brand:        p.brand(raw),
		SizeGuideKey: p.sizeGuideKey(raw, genders),
		Genders:      genders,
		Variants:     variants,
		Attributes:   p.parseAttributes(raw),
	}, nil
}

// genders derives the gender set from division: tags
func (p *FrankAndOakParser) genders(raw *RawProduct) []string {
	var genders []string
	for _, division := range tagValues(raw.Tags, "division:") {
		switch division {
		case "Men":
			genders = append(genders, "Men")
		case "Women":
			genders = append(genders, "Women")
		}
	}
	return genders
}

// sizeGuideKey combines the gender with the product type
func (p *FrankAndOakParser) sizeGuideKey(raw *RawProduct, genders []string) string {
	if len(genders) == 0 {
		return ""
	}
	return fmt.Sprintf("%s-%s", genders[0], raw.ProductType)
}

// productColor resolves the listing-wide color from the color_hex: tag
func (p *FrankAndOakParser) productColor(raw *RawProduct) *string {
	hexes := tagValues(raw.Tags, "color_hex:")
	if len(hexes) == 0 {
		return nil
	}

	hex := hexes[len(hexes)-1]
	if hex == "000" {
		hex = "000000"
	}
	return &hex
}

// parseVariants normalizes the listing's variants. The color applies
// to the whole listing; size is the only claimed axis, so two free
// option positions remain.
func (p *FrankAndOakParser) parseVariants(raw *RawProduct) ([]ParsedVariant, error) {
	colorHex := p.productColor(raw)
	sizePos := p.sizeOptionPosition(raw)
	free := availablePositions(0, sizePos)

	image, err := firstImage(raw)
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

		variants = append(variants, ParsedVariant{
			VariantID:     rv.ID,
			ProductID:     rv.ProductID,
			Available:     rv.Available,
			OriginalPrice: original,
			FinalPrice:    final,
			Option1:       rv.OptionValue(free[0]),
			Option2:       rv.OptionValue(free[1]),
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
