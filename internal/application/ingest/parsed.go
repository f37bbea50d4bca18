package ingest

import (
	"github.com/shopspring/decimal"
)

// Snapshot file names under the per-shop snapshot directory
const (
	RawSnapshotFile    = "scraped_products.json"
	ParsedSnapshotFile = "parsed_products.json"
)

// ParsedProduct is a source listing normalized into the canonical
// intermediate shape. It is JSON-serializable so a run can resume from
// the parsed snapshot without refetching.
type ParsedProduct struct {
	ProductID    int64             `json:"product_id"`
	Title        string            `json:"title"`
	Categories   []string          `json:"categories"`
	Description  string            `json:"description"`
	Tags         []string          `json:"tags"`
	Brand        string            `json:"brand"`
	SizeGuideKey string            `json:"size_guide,omitempty"`
	Genders      []string          `json:"genders"`
	Variants     []ParsedVariant   `json:"variants"`
	Attributes   []ParsedAttribute `json:"attributes"`
}

// ParsedVariant is a normalized variant. OriginalPrice is never below
// FinalPrice; the parser clamps it.
type ParsedVariant struct {
	VariantID     int64           `json:"variant_id"`
	ProductID     int64           `json:"product_id"`
	Available     bool            `json:"available"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	FinalPrice    decimal.Decimal `json:"final_price"`
	Option1       *string         `json:"option1"`
	Option2       *string         `json:"option2"`
	ColorHex      *string         `json:"color_hex"`
	Size          *string         `json:"size"`
	Link          string          `json:"link"`
	Image         ParsedImage     `json:"image"`
}

// ParsedImage is the image a variant is shown with
type ParsedImage struct {
	Src    string `json:"src"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ParsedAttribute is an option axis beyond color and size, with the
// 1-based display position it occupies among the remaining axes.
type ParsedAttribute struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// AttributePosition returns the position of the named attribute, or 0
// when the product does not carry it.
func (p *ParsedProduct) AttributePosition(name string) int {
	for _, attr := range p.Attributes {
		if attr.Name == name {
			return attr.Position
		}
	}
	return 0
}
