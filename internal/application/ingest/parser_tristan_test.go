package ingest

import (
	"testing"

	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTristanParser(t *testing.T) (*TristanParser, string) {
	t.Helper()
	dir := t.TempDir()
	p, err := NewTristanParser(refdata.NewStore(dir), zap.NewNop())
	require.NoError(t, err)
	return p, dir
}

func tristanRaw() *RawProduct {
	return &RawProduct{
		ID:          301,
		Title:       "Slim Stretch Pants",
		Handle:      "slim-stretch-pants",
		BodyHTML:    "<p>Slim fit.</p>",
		Vendor:      "Tristan",
		ProductType: "Pants",
		Tags:        []string{"__label:Women", "fall"},
		Options: []RawOption{
			{Name: "Colour", Position: 1},
			{Name: "Size", Position: 2},
		},
		Variants: []RawVariant{
			{
				ID:        3001,
				ProductID: 301,
				Option1:   strPtr("NB123 Navy"),
				Option2:   strPtr("6"),
				Price:     "119.00",
				Available: true,
			},
		},
		Images: []RawImage{{Src: "pants.jpg", Width: 900, Height: 1200}},
	}
}

func TestTristanParser_IsUnacceptable(t *testing.T) {
	p, _ := newTristanParser(t)

	assert.True(t, p.IsUnacceptable(&RawProduct{ProductType: "Socks & Tights"}))
	assert.True(t, p.IsUnacceptable(&RawProduct{ProductType: "Miscellenious"}))
	assert.False(t, p.IsUnacceptable(tristanRaw()))
}

func TestTristanParser_ParseProduct(t *testing.T) {
	p, dir := newTristanParser(t)
	writeRefFile(t, dir, "colors/Tristan.json", `[{"code":"NB","hex":"000080"}]`)

	product, err := p.ParseProduct(tristanRaw())
	require.NoError(t, err)

	assert.Equal(t, []string{"Women"}, product.Genders)
	assert.Equal(t, "Women-Bottoms", product.SizeGuideKey)
	assert.Equal(t, []string{"Pants"}, product.Categories)

	require.Len(t, product.Variants, 1)
	v := product.Variants[0]
	assert.Equal(t, "000080", *v.ColorHex)
	assert.Equal(t, "6", *v.Size)
	assert.Equal(t, "https://www.tristanstyle.com/products/slim-stretch-pants?variant=3001", v.Link)
}

func TestTristanParser_Genders(t *testing.T) {
	p, _ := newTristanParser(t)

	t.Run("reads label tags", func(t *testing.T) {
		raw := tristanRaw()
		raw.Tags = []string{"__label:Men", "__label:Women"}
		assert.Equal(t, []string{"Men", "Women"}, p.genders(raw))
	})

	t.Run("a listing without labels stays genderless", func(t *testing.T) {
		p2, dir := newTristanParser(t)
		writeRefFile(t, dir, "colors/Tristan.json", `[]`)

		raw := tristanRaw()
		raw.Tags = []string{"fall"}
		product, err := p2.ParseProduct(raw)
		require.NoError(t, err)
		assert.Empty(t, product.Genders)
		assert.Equal(t, "", product.SizeGuideKey)
	})
}

func TestTristanParser_SizeGuideKey(t *testing.T) {
	p, _ := newTristanParser(t)

	tests := []struct {
		productType string
		expected    string
	}{
		{"Pants", "Women-Bottoms"},
		{"Jeans", "Women-Bottoms"},
		{"Dresses", "Women-Tops"},
		{"Shoes", "Women-Shoes"},
		{"Swimwear", ""},
	}

	for _, tt := range tests {
		t.Run(tt.productType, func(t *testing.T) {
			raw := tristanRaw()
			raw.ProductType = tt.productType
			assert.Equal(t, tt.expected, p.sizeGuideKey(raw, []string{"Women"}))
		})
	}
}

func TestTristanParser_LookupColor(t *testing.T) {
	p, _ := newTristanParser(t)
	codes := []refdata.ColorCode{{Code: "NB", Hex: "000080"}, {Code: "WH", Hex: "FFFFFF"}}

	t.Run("matches the two-letter prefix", func(t *testing.T) {
		hex := p.lookupColor(codes, strPtr("WH001 White"))
		require.NotNil(t, hex)
		assert.Equal(t, "FFFFFF", *hex)
	})

	t.Run("unknown prefixes yield no color", func(t *testing.T) {
		assert.Nil(t, p.lookupColor(codes, strPtr("ZZ999")))
	})

	t.Run("short or missing values yield no color", func(t *testing.T) {
		assert.Nil(t, p.lookupColor(codes, strPtr("N")))
		assert.Nil(t, p.lookupColor(codes, nil))
	})
}

func TestTristanParser_ParseProduct_NoColorAxis(t *testing.T) {
	// Without a color axis the code table is never loaded, so a missing
	// fixture file must not fail the listing.
	p, _ := newTristanParser(t)

	raw := tristanRaw()
	raw.Options = []RawOption{{Name: "Size", Position: 1}}
	raw.Variants[0].Option1 = strPtr("6")
	raw.Variants[0].Option2 = nil

	product, err := p.ParseProduct(raw)
	require.NoError(t, err)
	require.Len(t, product.Variants, 1)
	assert.Nil(t, product.Variants[0].ColorHex)
}
