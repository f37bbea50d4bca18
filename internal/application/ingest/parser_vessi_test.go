package ingest

import (
	"testing"

	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newVessiParser(t *testing.T) (*VessiParser, string) {
	t.Helper()
	dir := t.TempDir()
	p, err := NewVessiParser(refdata.NewStore(dir), zap.NewNop())
	require.NoError(t, err)
	return p, dir
}

func vessiRaw() *RawProduct {
	return &RawProduct{
		ID:          501,
		Title:       "Everyday Classic",
		Handle:      "everyday-classic",
		BodyHTML:    "<p>Waterproof knit.</p>",
		Vendor:      "Vessi Footwear",
		ProductType: "Shoes",
		Tags:        []string{"Gender: Men", "Color: Asphalt Grey"},
		Options: []RawOption{
			{Name: "US Size", Position: 1},
		},
		Variants: []RawVariant{
			{
				ID:            5001,
				ProductID:     501,
				Option1:       strPtr("9"),
				Price:         "135.00",
				Available:     true,
				FeaturedImage: &RawImage{Src: "grey-9.jpg", Width: 600, Height: 600},
			},
			{
				ID:        5002,
				ProductID: 501,
				Option1:   strPtr("7U"),
				Price:     "135.00",
				Available: true,
			},
		},
		Images: []RawImage{{Src: "grey.jpg", Width: 600, Height: 600}},
	}
}

func TestVessiParser_IsUnacceptable(t *testing.T) {
	p, _ := newVessiParser(t)

	assert.True(t, p.IsUnacceptable(&RawProduct{ProductType: "Socks"}))
	assert.True(t, p.IsUnacceptable(&RawProduct{ProductType: ""}))
	assert.True(t, p.IsUnacceptable(&RawProduct{ProductType: "Shoes", Tags: []string{"Gender: Kids"}}))
	assert.False(t, p.IsUnacceptable(vessiRaw()))
}

func TestVessiParser_ParseProduct(t *testing.T) {
	p, dir := newVessiParser(t)
	writeRefFile(t, dir, "colors/Vessi.json", `{"Asphalt Grey":"6E6E6E"}`)

	product, err := p.ParseProduct(vessiRaw())
	require.NoError(t, err)

	assert.Equal(t, "Vessi", product.Brand)
	assert.Equal(t, []string{"Men"}, product.Genders)
	assert.Equal(t, []string{"Footwear"}, product.Categories)
	assert.Equal(t, "Men-Footwear", product.SizeGuideKey)
	assert.Empty(t, product.Attributes)

	// The grade-school size "7U" is dropped
	require.Len(t, product.Variants, 1)
	v := product.Variants[0]
	assert.Equal(t, int64(5001), v.VariantID)
	assert.Equal(t, "6E6E6E", *v.ColorHex)
	assert.Equal(t, "9", *v.Size)
	assert.True(t, v.OriginalPrice.Equal(v.FinalPrice))
	assert.Equal(t, "https://ca.vessi.com/products/everyday-classic", v.Link)
	assert.Equal(t, "grey-9.jpg", v.Image.Src)
}

func TestVessiParser_Genders(t *testing.T) {
	p, _ := newVessiParser(t)

	t.Run("gender tag wins", func(t *testing.T) {
		raw := vessiRaw()
		raw.Tags = []string{"Gender: Men", "Style: Men"}
		assert.Equal(t, []string{"Men"}, p.genders(raw))
	})

	t.Run("untagged listings default to Men", func(t *testing.T) {
		raw := vessiRaw()
		raw.Tags = []string{"Color: Asphalt Grey"}
		assert.Equal(t, []string{"Men"}, p.genders(raw))
	})

	t.Run("a style tag without a gender tag yields Women", func(t *testing.T) {
		raw := vessiRaw()
		raw.Tags = []string{"Style: Men"}
		assert.Equal(t, []string{"Women"}, p.genders(raw))
	})
}

func TestVessiParser_ColorHex(t *testing.T) {
	t.Run("joins up to three mapped colors", func(t *testing.T) {
		p, dir := newVessiParser(t)
		writeRefFile(t, dir, "colors/Vessi.json",
			`{"Red":"FF0000","Green":"00FF00","Blue":"0000FF","White":"FFFFFF"}`)

		raw := vessiRaw()
		raw.Tags = []string{"Color: Red", "Color: Green", "Color: Blue", "Color: White"}
		hex, err := p.colorHex(raw)
		require.NoError(t, err)
		require.NotNil(t, hex)
		assert.Equal(t, "FF0000/00FF00/0000FF", *hex)
	})

	t.Run("an unmapped color name fails the listing", func(t *testing.T) {
		p, dir := newVessiParser(t)
		writeRefFile(t, dir, "colors/Vessi.json", `{}`)

		raw := vessiRaw()
		_, err := p.ParseProduct(raw)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unmapped color")
	})

	t.Run("no color tags leave the color unset", func(t *testing.T) {
		p, dir := newVessiParser(t)
		writeRefFile(t, dir, "colors/Vessi.json", `{}`)

		raw := vessiRaw()
		raw.Tags = []string{"Gender: Men"}
		hex, err := p.colorHex(raw)
		require.NoError(t, err)
		assert.Nil(t, hex)
	})
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, isNumeric("9"))
	assert.True(t, isNumeric("12"))
	assert.False(t, isNumeric("7U"))
	assert.False(t, isNumeric("9.5"))
	assert.False(t, isNumeric(""))
}
