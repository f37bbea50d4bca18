package ingest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"go.uber.org/zap"
)

// reebokCategoryGroups maps the terms appearing in Reebok tags and
// titles onto size guide category groups.
var reebokCategoryGroups = map[string][]string{
	"Shoes": {"shoes", "shoe", "sandal", "sandals-shoes"},
	"Tops":  {"t-shirt", "t-shirts", "tops-t-shirts", "shirt", "tank", "dress", "leotard"},
	"Outerwear": {"sweatshirt", "sweatshirts", "jacket", "outdoor", "windbreaker",
		"hoodie", "track top"},
	"Bottoms": {"pant", "pants", "short", "shorts", "leggings", "tights", "skirt"},
}

// ReebokParser normalizes Reebok listings. Titles carry the vendor
// name and the colorway, both stripped off; gender, features and the
// category all come from structured tags.
type ReebokParser struct {
	*baseParser
}

// NewReebokParser creates the Reebok parser strategy
func NewReebokParser(ref *refdata.Store, log *zap.Logger) (*ReebokParser, error) {
	base, err := newBaseParser(SourceReebok, ref, log, GenderPolicyReject,
		[]string{"BOYS", "GIRLS", "Gift Cards"},
		[]string{"accessories", "CAP", "HEADWEAR", "HAT", "socks", "SOCKS", "CREW SOCKS",
			"ANKLE SOCKS", "BAG", "GLOVES", "BRA", "BOTTLE", "UNDERWEAR"},
	)
	if err != nil {
		return nil, err
	}
	return &ReebokParser{baseParser: base}, nil
}

// IsUnacceptable additionally excludes listings whose title mentions a
// disallowed word and footwear sold in split sizes.
func (p *ReebokParser) IsUnacceptable(raw *RawProduct) bool {
	if p.baseParser.IsUnacceptable(raw) {
		return true
	}

	for _, word := range strings.Fields(raw.Title) {
		if contains(p.unacceptableTags, strings.ToLower(word)) {
			return true
		}
	}

	if strings.Contains(raw.Vendor, "Footwear") {
		for _, opt := range raw.Options {
			if p.isSizeAxis(opt.Name) && len(opt.Values) > 0 && strings.Contains(opt.Values[0], "/") {
				return true
			}
		}
	}

	return false
}

// ParseProduct normalizes a single Reebok listing
func (p *ReebokParser) ParseProduct(raw *RawProduct) (*ParsedProduct, error) {
	genders, err := p.resolveGenders(p.genders(raw))
	if err != nil {
		return nil, err
	}

	categories := p.categories(raw)

	variants, err := p.parseVariants(raw)
	if err != nil {
		return nil, err
	}

	return &ParsedProduct{
		ProductID:    raw.ID,
		Title:        p.title(raw),
		Categories:   categories,
		Description:  p.description(raw),
		Tags:         raw.Tags,
		Brand:        p.brand(raw),
		SizeGuideKey: p.sizeGuideKey(genders, categories),
		Genders:      genders,
		Variants:     variants,
		Attributes:   p.parseAttributes(raw),
	}, nil
}

// title strips the vendor prefix and the trailing colorway named by the
// Colour: tags. Longer colorways are tried first so "Vector Navy" wins
// over "Navy".
func (p *ReebokParser) title(raw *RawProduct) string {
	title := strings.TrimPrefix(raw.Title, raw.Vendor)
	title = strings.TrimSpace(title)

	colors := tagValues(raw.Tags, "Colour: ")
	sort.Slice(colors, func(i, j int) bool { return len(colors[i]) > len(colors[j]) })
	for _, color := range colors {
		if strings.HasSuffix(title, color) {
			title = strings.TrimSuffix(title, color)
			break
		}
	}

	return strings.TrimSpace(title)
}

// genders derives the gender set from Gender: tags
func (p *ReebokParser) genders(raw *RawProduct) []string {
	var genders []string
	for _, value := range tagValues(raw.Tags, "Gender: ") {
		switch value {
		case "UNISEX":
			genders = appendUnique(genders, "Women")
			genders = appendUnique(genders, "Men")
		case "Women":
			genders = appendUnique(genders, "Women")
		case "Men":
			genders = appendUnique(genders, "Men")
		}
	}
	return genders
}

// description appends the Feature: tags to the cleaned body text
func (p *ReebokParser) description(raw *RawProduct) string {
	description := p.baseParser.description(raw)
	for _, feature := range tagValues(raw.Tags, "Feature: ") {
		description += "\n" + feature
	}
	return description
}

// categories resolves the category groups a listing belongs to, first
// from its tags and then, when no tag matches, from its title words.
func (p *ReebokParser) categories(raw *RawProduct) []string {
	var categories []string
	for group, terms := range reebokCategoryGroups {
		for _, tag := range raw.Tags {
			if contains(terms, strings.ToLower(tag)) {
				categories = appendUnique(categories, group)
				break
			}
		}
	}
	if len(categories) > 0 {
		sort.Strings(categories)
		return categories
	}

	for group, terms := range reebokCategoryGroups {
		for _, word := range strings.Fields(raw.Title) {
			if contains(terms, strings.ToLower(word)) {
				categories = appendUnique(categories, group)
				break
			}
		}
	}
	sort.Strings(categories)
	return categories
}

// sizeGuideKey combines the gender with the first category group
func (p *ReebokParser) sizeGuideKey(genders, categories []string) string {
	if len(genders) == 0 || len(categories) == 0 {
		return ""
	}
	return fmt.Sprintf("%s-%s", genders[0], categories[0])
}

// colorHex finds the hex colorway tag; Reebok tags it with a leading #
func (p *ReebokParser) colorHex(raw *RawProduct) *string {
	for _, tag := range raw.Tags {
		if strings.HasPrefix(tag, "#") && len(tag) >= 7 {
			hex := tag[len(tag)-6:]
			return &hex
		}
	}
	return nil
}

// parseVariants normalizes the listing's variants. Size is the only
// claimed axis and the colorway applies to the whole listing.
func (p *ReebokParser) parseVariants(raw *RawProduct) ([]ParsedVariant, error) {
	colorHex := p.colorHex(raw)
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
