package ingest

// RawProduct is a product listing as published by a Shopify storefront's
// products.json endpoint. The shape is loose on purpose: sources differ
// in which fields they fill and how.
type RawProduct struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Handle      string       `json:"handle"`
	BodyHTML    string       `json:"body_html"`
	Vendor      string       `json:"vendor"`
	ProductType string       `json:"product_type"`
	Tags        []string     `json:"tags"`
	Variants    []RawVariant `json:"variants"`
	Options     []RawOption  `json:"options"`
	Images      []RawImage   `json:"images"`
}

// RawVariant is a purchasable configuration inside a raw listing.
// Prices arrive as strings and compare_at_price may be null.
type RawVariant struct {
	ID             int64     `json:"id"`
	ProductID      int64     `json:"product_id"`
	Title          string    `json:"title"`
	Option1        *string   `json:"option1"`
	Option2        *string   `json:"option2"`
	Option3        *string   `json:"option3"`
	Price          string    `json:"price"`
	CompareAtPrice *string   `json:"compare_at_price"`
	Available      bool      `json:"available"`
	FeaturedImage  *RawImage `json:"featured_image"`
}

// RawOption is an option axis of a raw listing. Position is 1-based.
type RawOption struct {
	Name     string   `json:"name"`
	Position int      `json:"position"`
	Values   []string `json:"values"`
}

// RawImage is an image reference inside a raw listing
type RawImage struct {
	Src    string `json:"src"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// OptionValue returns the variant's value at a 1-based option position
func (v *RawVariant) OptionValue(position int) *string {
	switch position {
	case 1:
		return v.Option1
	case 2:
		return v.Option2
	case 3:
		return v.Option3
	default:
		return nil
	}
}
