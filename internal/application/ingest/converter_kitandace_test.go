package ingest

import (
	"testing"

	"github.com/chicpic/backend/internal/domain/catalog"
	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newKitAndAceConverter(t *testing.T) (*KitAndAceConverter, string) {
	t.Helper()
	dir := t.TempDir()
	return NewKitAndAceConverter(refdata.NewStore(dir), zap.NewNop()), dir
}

func TestKitAndAceConverter_ConvertVariant(t *testing.T) {
	productID := uuid.New()

	parsed := func(color *string) *ParsedVariant {
		return &ParsedVariant{
			VariantID:     1001,
			Available:     true,
			OriginalPrice: decimal.NewFromInt(78),
			FinalPrice:    decimal.NewFromInt(78),
			ColorHex:      color,
			Size:          strPtr("M"),
			Link:          "https://example.com/p",
			Image:         ParsedImage{Src: "img.jpg"},
		}
	}

	t.Run("resolves the color name through the color map", func(t *testing.T) {
		c, dir := newKitAndAceConverter(t)
		writeRefFile(t, dir, "colors/Kit and Ace.json", `{"Navy":"000080"}`)

		variant, err := c.ConvertVariant(parsed(strPtr("Navy")), productID)
		require.NoError(t, err)
		require.NotNil(t, variant.ColorHex)
		assert.Equal(t, "000080", *variant.ColorHex)
	})

	t.Run("an unmapped name leaves the color unset", func(t *testing.T) {
		c, dir := newKitAndAceConverter(t)
		writeRefFile(t, dir, "colors/Kit and Ace.json", `{"Navy":"000080"}`)

		variant, err := c.ConvertVariant(parsed(strPtr("Heather Moss")), productID)
		require.NoError(t, err)
		assert.Nil(t, variant.ColorHex)
	})

	t.Run("no parsed color skips the lookup", func(t *testing.T) {
		c, _ := newKitAndAceConverter(t)

		variant, err := c.ConvertVariant(parsed(nil), productID)
		require.NoError(t, err)
		assert.Nil(t, variant.ColorHex)
	})
}

func TestKitAndAceConverter_ConvertSizings_MenBottoms(t *testing.T) {
	guide := "Size,Hips\n32,40-42\n"

	t.Run("derives waist and inseam from the size and Length option", func(t *testing.T) {
		c, dir := newKitAndAceConverter(t)
		writeRefFile(t, dir, "size_guides/Kit and Ace/Men-Bottoms.csv", guide)

		parsed := &ParsedProduct{
			SizeGuideKey: "Men-Bottoms",
			Attributes:   []ParsedAttribute{{Name: "Length", Position: 1}},
		}
		variant := testVariant(t, strPtr("32"), strPtr("30 in"), nil)

		sizings, err := c.ConvertSizings(parsed, variant)
		require.NoError(t, err)

		require.Len(t, sizings, 3)
		assert.Equal(t, catalog.SizingWaist, sizings[0].Option)
		assert.Equal(t, 81.3, sizings[0].Value) // 32 in
		assert.Equal(t, catalog.SizingInseam, sizings[1].Option)
		assert.Equal(t, 76.2, sizings[1].Value) // 30 in
		assert.Equal(t, catalog.SizingHips, sizings[2].Option)
		assert.Equal(t, 41.0, sizings[2].Value)
	})

	t.Run("falls back to the guide without a Length attribute", func(t *testing.T) {
		c, dir := newKitAndAceConverter(t)
		writeRefFile(t, dir, "size_guides/Kit and Ace/Men-Bottoms.csv", guide)

		parsed := &ParsedProduct{SizeGuideKey: "Men-Bottoms"}
		sizings, err := c.ConvertSizings(parsed, testVariant(t, strPtr("32"), nil, nil))
		require.NoError(t, err)

		require.Len(t, sizings, 1)
		assert.Equal(t, catalog.SizingHips, sizings[0].Option)
	})

	t.Run("a size absent from the guide yields no sizings", func(t *testing.T) {
		c, dir := newKitAndAceConverter(t)
		writeRefFile(t, dir, "size_guides/Kit and Ace/Men-Bottoms.csv", guide)

		parsed := &ParsedProduct{
			SizeGuideKey: "Men-Bottoms",
			Attributes:   []ParsedAttribute{{Name: "Length", Position: 1}},
		}
		sizings, err := c.ConvertSizings(parsed, testVariant(t, strPtr("40"), strPtr("30 in"), nil))
		require.NoError(t, err)
		assert.Nil(t, sizings)
	})

	t.Run("an unparsable waist size fails the run", func(t *testing.T) {
		c, dir := newKitAndAceConverter(t)
		writeRefFile(t, dir, "size_guides/Kit and Ace/Men-Bottoms.csv", "Size,Hips\nXL,40-42\n")

		parsed := &ParsedProduct{
			SizeGuideKey: "Men-Bottoms",
			Attributes:   []ParsedAttribute{{Name: "Length", Position: 1}},
		}
		_, err := c.ConvertSizings(parsed, testVariant(t, strPtr("XL"), strPtr("30 in"), nil))
		require.Error(t, err)
	})
}

func TestKitAndAceConverter_ConvertSizings_WomenTallBottoms(t *testing.T) {
	guide := "Size,Waist,Hips,Inseam,Tall Inseam\n10,30,40,29,32\n"

	t.Run("looks the size up without the T suffix", func(t *testing.T) {
		c, dir := newKitAndAceConverter(t)
		writeRefFile(t, dir, "size_guides/Kit and Ace/Women-Bottoms.csv", guide)

		parsed := &ParsedProduct{SizeGuideKey: "Women-Bottoms"}
		sizings, err := c.ConvertSizings(parsed, testVariant(t, strPtr("10T"), nil, nil))
		require.NoError(t, err)

		require.Len(t, sizings, 3)
		assert.Equal(t, catalog.SizingWaist, sizings[0].Option)
		assert.Equal(t, 30.0, sizings[0].Value)
		assert.Equal(t, catalog.SizingInseam, sizings[1].Option)
		assert.Equal(t, 32.0, sizings[1].Value) // the Tall Inseam column
		assert.Equal(t, catalog.SizingHips, sizings[2].Option)
		assert.Equal(t, 40.0, sizings[2].Value)
	})

	t.Run("regular sizes go through the guide directly", func(t *testing.T) {
		c, dir := newKitAndAceConverter(t)
		writeRefFile(t, dir, "size_guides/Kit and Ace/Women-Bottoms.csv", guide)

		parsed := &ParsedProduct{SizeGuideKey: "Women-Bottoms"}
		sizings, err := c.ConvertSizings(parsed, testVariant(t, strPtr("10"), nil, nil))
		require.NoError(t, err)

		// Guide column order: Waist, Hips, Inseam. Tall Inseam names no
		// dimension in the base path and is skipped.
		require.Len(t, sizings, 3)
		assert.Equal(t, catalog.SizingHips, sizings[1].Option)
		assert.Equal(t, catalog.SizingInseam, sizings[2].Option)
		assert.Equal(t, 29.0, sizings[2].Value)
	})
}

func TestKitAndAceConverter_ConvertSizings_NoSize(t *testing.T) {
	c, _ := newKitAndAceConverter(t)

	sizings, err := c.ConvertSizings(&ParsedProduct{SizeGuideKey: "Men-Bottoms"}, testVariant(t, nil, nil, nil))
	require.NoError(t, err)
	assert.Nil(t, sizings)
}
