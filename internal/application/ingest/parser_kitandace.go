package ingest

import (
	"fmt"
	"strings"

	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"go.uber.org/zap"
)

// sizeGuideTagPrefix marks the Kit and Ace tag that names the size guide
const sizeGuideTagPrefix = "SizeGuide::"

// KitAndAceParser normalizes Kit and Ace listings. Gender comes from
// tags, the size guide from a dedicated tag, and variants carry their
// color value directly as an option.
type KitAndAceParser struct {
	*baseParser
}

// NewKitAndAceParser creates the Kit and Ace parser strategy
func NewKitAndAceParser(ref *refdata.Store, log *zap.Logger) (*KitAndAceParser, error) {
	base, err := newBaseParser(SourceKitAndAce, ref, log, GenderPolicyReject,
		[]string{"", "Scarves", "Underwear & Socks", "Gift Cards", "Hats", "Shopping Totes", "Gloves & Mittens"},
		[]string{"Accessories"},
	)
	if err != nil {
		return nil, err
	}
	return &KitAndAceParser{baseParser: base}, nil
}

// ParseProduct normalizes a single Kit and Ace listing
func (p *KitAndAceParser) ParseProduct(raw *RawProduct) (*ParsedProduct, error) {
	genders, err := p.genders(raw)
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
		SizeGuideKey: p.sizeGuideKey(raw),
		Genders:      genders,
		Variants:     variants,
		Attributes:   p.parseAttributes(raw),
	}, nil
}

// genders derives the gender set from tags. A tag mentioning "women"
// wins over the "men" substring it also contains.
func (p *KitAndAceParser) genders(raw *RawProduct) ([]string, error) {
	var genders []string
	for _, tag := range raw.Tags {
		lower := strings.ToLower(tag)
		if strings.Contains(lower, "women") {
			genders = appendUnique(genders, "Women")
		} else if strings.Contains(lower, "men") {
			genders = appendUnique(genders, "Men")
		}
	}
	return p.resolveGenders(genders)
}

// sizeGuideKey extracts the size guide name from the SizeGuide:: tag
func (p *KitAndAceParser) sizeGuideKey(raw *RawProduct) string {
	for _, tag := range raw.Tags {
		if strings.HasPrefix(tag, sizeGuideTagPrefix) {
			return tag[len(sizeGuideTagPrefix):]
		}
	}
	return ""
}

// parseVariants normalizes the listing's variants. A variant without a
// featured image is logged and dropped.
func (p *KitAndAceParser) parseVariants(raw *RawProduct) ([]ParsedVariant, error) {
	colorPos := p.colorOptionPosition(raw)
	sizePos := p.sizeOptionPosition(raw)
	free := availablePositions(colorPos, sizePos)

	variants := make([]ParsedVariant, 0, len(raw.Variants))
	for i := range raw.Variants {
		rv := &raw.Variants[i]

		original, final, err := pricePair(rv)
		if err != nil {
			return nil, err
		}

		if rv.FeaturedImage == nil {
			p.log.Warn("Variant has no featured image",
				zap.Int64("product_id", rv.ProductID),
				zap.Int64("variant_id", rv.ID),
			)
			continue
		}

		var colorHex, size *string
		if colorPos != 0 {
			colorHex = rv.OptionValue(colorPos)
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
				Src:    rv.FeaturedImage.Src,
				Width:  rv.FeaturedImage.Width,
				Height: rv.FeaturedImage.Height,
			},
		})
	}

	return variants, nil
}

func appendUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}
