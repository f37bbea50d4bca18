package ingest

import (
	"fmt"

	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"go.uber.org/zap"
)

// tristanCategoryGroups maps Tristan product types onto size guide
// category groups.
var tristanCategoryGroups = map[string][]string{
	"Shoes": {"Shoes"},
	"Tops": {"T-Shirts", "Shirts & Blouses", "Shirts & Overshirts", "Outerwear",
		"Sweaters & Cardigans", "Blazers", "Dresses", "Vests"},
	"Bottoms": {"Pants", "Jeans", "Skirts"},
}

// TristanParser normalizes Tristan listings. Gender comes from label
// tags and variant colors resolve through a two-letter code lookup.
type TristanParser struct {
	*baseParser
}

// NewTristanParser creates the Tristan parser strategy
func NewTristanParser(ref *refdata.Store, log *zap.Logger) (*TristanParser, error) {
	base, err := newBaseParser(SourceTristan, ref, log, GenderPolicyAllowNone,
		[]string{"Socks", "Jewellery", "Scarves", "Belts", "Socks & Tights", "Sunglasses",
			"Hats", "Ties", "Bags", "Underwear", "Other Accessories", "Miscellenious"},
		[]string{},
	)
	if err != nil {
		return nil, err
	}
	return &TristanParser{baseParser: base}, nil
}

// ParseProduct normalizes a single Tristan listing
func (p *TristanParser) ParseProduct(raw *RawProduct) (*ParsedProduct, error) {
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

// genders derives the gender set from __label: tags
func (p *TristanParser) genders(raw *RawProduct) []string {
	var genders []string
	for _, label := range tagValues(raw.Tags, "__label:") {
		switch label {
		case "Men":
			genders = append(genders, "Men")
		case "Women":
			genders = append(genders, "Women")
		}
	}
	return genders
}

// sizeGuideKey resolves the category group the product type belongs to
func (p *TristanParser) sizeGuideKey(raw *RawProduct, genders []string) string {
	if len(genders) == 0 {
		return ""
	}

	for group, types := range tristanCategoryGroups {
		if contains(types, raw.ProductType) {
			return fmt.Sprintf("%s-%s", genders[0], group)
		}
	}
	return ""
}

// parseVariants normalizes the listing's variants, resolving the color
// option value through the shop's color code table.
func (p *TristanParser) parseVariants(raw *RawProduct) ([]ParsedVariant, error) {
	colorPos := p.colorOptionPosition(raw)
	sizePos := p.sizeOptionPosition(raw)
	free := availablePositions(colorPos, sizePos)

	image, err := firstImage(raw)
	if err != nil {
		return nil, err
	}

	var codes []refdata.ColorCode
	if colorPos != 0 {
		codes, err = p.ref.ColorCodes(p.source.Name)
		if err != nil {
			return nil, err
		}
	}

	variants := make([]ParsedVariant, 0, len(raw.Variants))
	for i := range raw.Variants {
		rv := &raw.Variants[i]

		original, final, err := pricePair(rv)
		if err != nil {
			return nil, err
		}

		var colorHex, size *string
		if colorPos != 0 {
			colorHex = p.lookupColor(codes, rv.OptionValue(colorPos))
		}
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
			ColorHex:      colorHex,
			Size:          size,
			Link:          fmt.Sprintf("%sproducts/%s?variant=%d", p.source.Website, raw.Handle, rv.ID),
			Image: ParsedImage{
				Src:    image.Src,
				Width:  image.Width,
				Height: image.Height,
			},
		})
	}

	return variants, nil
}

// lookupColor matches the first two characters of the color option
// value against the code table.
func (p *TristanParser) lookupColor(codes []refdata.ColorCode, value *string) *string {
	if value == nil || len(*value) < 2 {
		return nil
	}

	prefix := (*value)[:2]
	for _, code := range codes {
		if code.Code == prefix {
			hex := code.Hex
			return &hex
		}
	}
	return nil
}
