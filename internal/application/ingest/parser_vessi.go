package ingest

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"go.uber.org/zap"
)

// VessiParser normalizes Vessi listings. Only footwear is in scope, so
// the category is fixed; the brand is fixed too because the vendor
// field is unreliable. Sizes appear under a "US Size" axis and colors
// under Color: tags resolved through the shop's color map.
type VessiParser struct {
	*baseParser
}

// NewVessiParser creates the Vessi parser strategy
func NewVessiParser(ref *refdata.Store, log *zap.Logger) (*VessiParser, error) {
	base, err := newBaseParser(SourceVessi, ref, log, GenderPolicyReject,
		[]string{"Apparel", "Socks", "", "Gloves", "Bag", "Donation", "Hats", "Face Masks", "Gift Card"},
		[]string{"Gender: Kids", "Style: Kids", "kids", "Product: Kids Weekend Sale"},
	)
	if err != nil {
		return nil, err
	}
	base.extraAttributeSkip = []string{"US Size"}
	return &VessiParser{baseParser: base}, nil
}

// ParseProduct normalizes a single Vessi listing
func (p *VessiParser) ParseProduct(raw *RawProduct) (*ParsedProduct, error) {
	genders := p.genders(raw)
	categories := []string{"Footwear"}

	variants, err := p.parseVariants(raw)
	if err != nil {
		return nil, err
	}

	return &ParsedProduct{
		ProductID:    raw.ID,
		Title:        raw.Title,
		Categories:   categories,
		Description:  p.description(raw),
		Tags:         raw.Tags,
		Brand:        "Vessi",
		SizeGuideKey: fmt.Sprintf("%s-%s", genders[0], categories[0]),
		Genders:      genders,
		Variants:     variants,
		Attributes:   p.parseAttributes(raw),
	}, nil
}

// genders defaults to Men unless the tags explicitly mark the listing
// as a women's style.
func (p *VessiParser) genders(raw *RawProduct) []string {
	if contains(raw.Tags, "Gender: Men") || !contains(raw.Tags, "Style: Men") {
		return []string{"Men"}
	}
	return []string{"Women"}
}

// colorHex resolves the Color: tags through the shop's color map and
// joins up to three of them. An unmapped color name fails the listing.
func (p *VessiParser) colorHex(raw *RawProduct) (*string, error) {
	colorMap, err := p.ref.ColorMap(p.source.Name)
	if err != nil {
		return nil, err
	}

	var hexes []string
	for _, name := range tagValues(raw.Tags, "Color: ") {
		hex, ok := colorMap[name]
		if !ok {
			return nil, fmt.Errorf("product %d has unmapped color %q", raw.ID, name)
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

// parseVariants normalizes the listing's variants. Variants whose size
// is not purely numeric are kids' or grade-school sizes and dropped.
func (p *VessiParser) parseVariants(raw *RawProduct) ([]ParsedVariant, error) {
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

		var size *string
		if sizePos != 0 {
			size = rv.OptionValue(sizePos)
		}
		if size == nil || !isNumeric(*size) {
			continue
		}

		// The source publishes no compare-at price
		price, err := parsePrice(rv.ID, rv.Price)
		if err != nil {
			return nil, err
		}

		image, err := variantImage(raw, rv)
		if err != nil {
			return nil, err
		}

		variants = append(variants, ParsedVariant{
			VariantID:     rv.ID,
			ProductID:     rv.ProductID,
			Available:     rv.Available,
			OriginalPrice: price,
			FinalPrice:    price,
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

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
