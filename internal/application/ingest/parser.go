package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Parser normalizes raw listings of one source into the canonical
// intermediate shape. Every source has its own strategy; all of them
// share the behavior of baseParser.
type Parser interface {
	// Source returns the source the parser handles
	Source() Source

	// IsUnacceptable reports whether a listing is out of scope for the
	// catalog (gift cards, accessories, kids lines and so on)
	IsUnacceptable(raw *RawProduct) bool

	// ParseProduct normalizes a single listing
	ParseProduct(raw *RawProduct) (*ParsedProduct, error)
}

// ParseProducts runs a parser over a raw snapshot. Unacceptable
// listings are dropped quietly; a listing the parser cannot normalize
// is logged with its original id and skipped, it never aborts the run.
// The returned skipped slice holds the original ids of failed listings.
func ParseProducts(p Parser, raws []RawProduct, log *zap.Logger) ([]ParsedProduct, []string) {
	parsed := make([]ParsedProduct, 0, len(raws))
	var skipped []string

	for i := range raws {
		raw := &raws[i]

		if p.IsUnacceptable(raw) {
			log.Debug("Product is unacceptable",
				zap.String("shop", p.Source().Name),
				zap.Int64("product_id", raw.ID),
			)
			continue
		}

		product, err := p.ParseProduct(raw)
		if err != nil {
			log.Error("Failed to parse product",
				zap.String("shop", p.Source().Name),
				zap.Int64("product_id", raw.ID),
				zap.Error(err),
			)
			skipped = append(skipped, strconv.FormatInt(raw.ID, 10))
			continue
		}

		parsed = append(parsed, *product)
	}

	return parsed, skipped
}

// GenderPolicy decides what happens when a source listing carries no
// recognizable gender signal.
type GenderPolicy int

const (
	// GenderPolicyReject fails the listing so it is skipped
	GenderPolicyReject GenderPolicy = iota
	// GenderPolicyAllowNone keeps the listing with an empty gender set
	GenderPolicyAllowNone
	// GenderPolicyBoth assigns both genders
	GenderPolicyBoth
)

// Option axis names treated as color or size rather than attributes
var (
	colorAxisNames = []string{"Color", "Colour"}
	sizeAxisNames  = []string{"Size"}
)

var htmlTagPattern = regexp.MustCompile(`<.*?>`)

// baseParser carries the behavior every source strategy shares:
// disallow lists, option position resolution, attribute extraction,
// description cleanup and the price rule.
type baseParser struct {
	source             Source
	ref                *refdata.Store
	log                *zap.Logger
	genderPolicy       GenderPolicy
	unacceptableTypes  []string
	unacceptableTags   []string
	extraAttributeSkip []string
}

// newBaseParser builds the shared parser core. Both disallow lists are
// mandatory; a strategy that has nothing to exclude passes an empty
// slice, never nil.
func newBaseParser(source Source, ref *refdata.Store, log *zap.Logger,
	policy GenderPolicy, unacceptableTypes, unacceptableTags []string) (*baseParser, error) {

	if unacceptableTypes == nil {
		return nil, fmt.Errorf("%s parser: unacceptable product types not set", source.Name)
	}
	if unacceptableTags == nil {
		return nil, fmt.Errorf("%s parser: unacceptable tags not set", source.Name)
	}

	return &baseParser{
		source:            source,
		ref:               ref,
		log:               log.Named("parser").With(zap.String("shop", source.Name)),
		genderPolicy:      policy,
		unacceptableTypes: lowerAll(unacceptableTypes),
		unacceptableTags:  lowerAll(unacceptableTags),
	}, nil
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

// Source returns the source the parser handles
func (b *baseParser) Source() Source {
	return b.source
}

// IsUnacceptable applies the type and tag disallow lists
func (b *baseParser) IsUnacceptable(raw *RawProduct) bool {
	if contains(b.unacceptableTypes, strings.ToLower(raw.ProductType)) {
		return true
	}
	for _, tag := range raw.Tags {
		if contains(b.unacceptableTags, strings.ToLower(tag)) {
			return true
		}
	}
	return false
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// brand returns the listing vendor; strategies with a fixed brand override
func (b *baseParser) brand(raw *RawProduct) string {
	return raw.Vendor
}

// description strips markup from the listing body
func (b *baseParser) description(raw *RawProduct) string {
	return stripHTML(raw.BodyHTML)
}

// stripHTML removes HTML tags from a string
func stripHTML(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}

// parseAttributes extracts the option axes that are neither color nor
// size, renumbering positions sequentially from 1.
func (b *baseParser) parseAttributes(raw *RawProduct) []ParsedAttribute {
	attributes := []ParsedAttribute{}
	position := 1

	for _, opt := range raw.Options {
		if b.isColorAxis(opt.Name) || b.isSizeAxis(opt.Name) {
			continue
		}
		attributes = append(attributes, ParsedAttribute{Name: opt.Name, Position: position})
		position++
	}

	return attributes
}

func (b *baseParser) isColorAxis(name string) bool {
	for _, axis := range colorAxisNames {
		if name == axis {
			return true
		}
	}
	return false
}

func (b *baseParser) isSizeAxis(name string) bool {
	if contains(b.extraAttributeSkip, name) {
		return true
	}
	for _, axis := range sizeAxisNames {
		if name == axis {
			return true
		}
	}
	return false
}

// colorOptionPosition returns the 1-based position of the color axis,
// or 0 when the listing has none.
func (b *baseParser) colorOptionPosition(raw *RawProduct) int {
	for _, opt := range raw.Options {
		if b.isColorAxis(opt.Name) {
			return opt.Position
		}
	}
	return 0
}

// sizeOptionPosition returns the 1-based position of the size axis,
// or 0 when the listing has none.
func (b *baseParser) sizeOptionPosition(raw *RawProduct) int {
	for _, opt := range raw.Options {
		if b.isSizeAxis(opt.Name) {
			return opt.Position
		}
	}
	return 0
}

// availablePositions returns the option positions left over after the
// color and size axes are claimed, in ascending order.
func availablePositions(colorPos, sizePos int) []int {
	positions := make([]int, 0, 3)
	for p := 1; p <= 3; p++ {
		if p != colorPos && p != sizePos {
			positions = append(positions, p)
		}
	}
	return positions
}

// parsePrice parses one price string of a variant
func parsePrice(variantID int64, price string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("variant %d has unparsable price %q: %w", variantID, price, err)
	}
	return d, nil
}

// pricePair derives the final and original price of a raw variant.
// The original price is the compare-at price when present, clamped so
// it is never below the final price.
func pricePair(v *RawVariant) (original, final decimal.Decimal, err error) {
	final, err = parsePrice(v.ID, v.Price)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	original = final
	if v.CompareAtPrice != nil && *v.CompareAtPrice != "" {
		original, err = decimal.NewFromString(*v.CompareAtPrice)
		if err != nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("variant %d has unparsable compare_at_price %q: %w", v.ID, *v.CompareAtPrice, err)
		}
		if original.LessThan(final) {
			original = final
		}
	}

	return original, final, nil
}

// resolveGenders applies the source's gender policy to the genders
// found on a listing.
func (b *baseParser) resolveGenders(found []string) ([]string, error) {
	if len(found) > 0 {
		return found, nil
	}
	switch b.genderPolicy {
	case GenderPolicyBoth:
		return []string{"Women", "Men"}, nil
	case GenderPolicyAllowNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("cannot determine product gender")
	}
}

// firstImage returns the listing's lead image
func firstImage(raw *RawProduct) (*RawImage, error) {
	if len(raw.Images) == 0 {
		return nil, fmt.Errorf("product %d has no images", raw.ID)
	}
	return &raw.Images[0], nil
}

// variantImage prefers the variant's featured image, falling back to
// the listing's lead image.
func variantImage(raw *RawProduct, v *RawVariant) (*RawImage, error) {
	if v.FeaturedImage != nil {
		return v.FeaturedImage, nil
	}
	return firstImage(raw)
}

// tagValues collects the remainders of tags carrying the given prefix
func tagValues(tags []string, prefix string) []string {
	var values []string
	for _, tag := range tags {
		if strings.HasPrefix(tag, prefix) {
			values = append(values, tag[len(prefix):])
		}
	}
	return values
}
