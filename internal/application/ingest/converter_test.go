package ingest

import (
	"context"
	"testing"

	"github.com/chicpic/backend/internal/domain/catalog"
	"github.com/chicpic/backend/internal/domain/shared"
	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCategoryRepo serves seeded categories from memory
type fakeCategoryRepo struct {
	categories []catalog.Category
}

func (f *fakeCategoryRepo) FindByTitleAndGender(_ context.Context, title string, gender catalog.Gender) (*catalog.Category, error) {
	for i := range f.categories {
		if f.categories[i].Title == title && f.categories[i].Gender == gender {
			return &f.categories[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCategoryRepo) FindAll(_ context.Context) ([]catalog.Category, error) {
	return f.categories, nil
}

func (f *fakeCategoryRepo) Save(_ context.Context, category *catalog.Category) error {
	f.categories = append(f.categories, *category)
	return nil
}

// fakeAttributeRepo serves attributes from memory
type fakeAttributeRepo struct {
	attributes []catalog.Attribute
}

func (f *fakeAttributeRepo) FindByName(_ context.Context, name string) (*catalog.Attribute, error) {
	for i := range f.attributes {
		if f.attributes[i].Name == name {
			return &f.attributes[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeAttributeRepo) Save(_ context.Context, attribute *catalog.Attribute) error {
	f.attributes = append(f.attributes, *attribute)
	return nil
}

func mustCategory(t *testing.T, title string, gender catalog.Gender) catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory(title, gender)
	require.NoError(t, err)
	return *c
}

func newTestConverter(t *testing.T) (*baseConverter, string) {
	t.Helper()
	dir := t.TempDir()
	return newBaseConverter(SourceKitAndAce, refdata.NewStore(dir), zap.NewNop()), dir
}

func testVariant(t *testing.T, size *string, option1, option2 *string) *catalog.Variant {
	t.Helper()
	v, err := catalog.NewVariant(uuid.New(), 9001, "img.jpg", "link",
		decimal.NewFromInt(80), decimal.NewFromInt(60), true, nil, size, option1, option2)
	require.NoError(t, err)
	return v
}

func TestParseSizeCell(t *testing.T) {
	tests := []struct {
		cell     string
		expected float64
	}{
		{"34", 34},
		{"34.5", 34.5},
		{" 28 ", 28},
		{"34-36", 35},
		{"34 - 36", 35},
		{"34/36", 35},
		{"30-32-34", 32},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			v, err := parseSizeCell(tt.cell)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}

	t.Run("rejects unparsable cells", func(t *testing.T) {
		_, err := parseSizeCell("n/a")
		require.Error(t, err)
		_, err = parseSizeCell("")
		require.Error(t, err)
		_, err = parseSizeCell("34-n/a")
		require.Error(t, err)
	})
}

func TestBaseConverter_ConvertProduct(t *testing.T) {
	c, _ := newTestConverter(t)
	shopID := uuid.New()

	parsed := &ParsedProduct{ProductID: 101, Title: "Tee", Brand: "Kit and Ace", Description: "Soft."}
	product, err := c.ConvertProduct(parsed, shopID)
	require.NoError(t, err)

	assert.Equal(t, shopID, product.ShopID)
	assert.Equal(t, int64(101), product.OriginalID)
	assert.Equal(t, "Tee", product.Title)
	assert.False(t, product.IsDeleted)
}

func TestBaseConverter_ConvertVariant(t *testing.T) {
	c, _ := newTestConverter(t)
	productID := uuid.New()

	parsed := &ParsedVariant{
		VariantID:     1001,
		Available:     true,
		OriginalPrice: decimal.NewFromInt(80),
		FinalPrice:    decimal.NewFromInt(60),
		ColorHex:      strPtr("000080"),
		Size:          strPtr("M"),
		Link:          "https://example.com/p",
		Image:         ParsedImage{Src: "img.jpg"},
	}

	variant, err := c.ConvertVariant(parsed, productID)
	require.NoError(t, err)

	assert.Equal(t, productID, variant.ProductID)
	assert.Equal(t, int64(1001), variant.OriginalID)
	assert.Equal(t, "000080", *variant.ColorHex)
	assert.True(t, variant.IsDiscounted())
}

func TestBaseConverter_ConvertCategories(t *testing.T) {
	ctx := context.Background()

	mappings := `[
		{"title":"T-Shirts","gender":"Women","canonical_title":"Tops"},
		{"title":"T-Shirts","gender":"Men","canonical_title":"Tops"},
		{"title":"Joggers","gender":"Women","canonical_title":"Activewear"}
	]`

	seed := func(t *testing.T) *fakeCategoryRepo {
		return &fakeCategoryRepo{categories: []catalog.Category{
			mustCategory(t, "Tops", catalog.GenderWomen),
			mustCategory(t, "Tops", catalog.GenderMen),
		}}
	}

	t.Run("crosses titles with genders", func(t *testing.T) {
		c, dir := newTestConverter(t)
		writeRefFile(t, dir, "categories/Kit and Ace.json", mappings)
		repo := seed(t)

		parsed := &ParsedProduct{Categories: []string{"T-Shirts"}, Genders: []string{"Women", "Men"}}
		resolved, err := c.ConvertCategories(ctx, parsed, repo)
		require.NoError(t, err)

		require.Len(t, resolved, 2)
		assert.Equal(t, "Tops", resolved[0].Title)
		assert.Equal(t, catalog.GenderWomen, resolved[0].Gender)
		assert.Equal(t, catalog.GenderMen, resolved[1].Gender)
	})

	t.Run("omits pairs without a mapping", func(t *testing.T) {
		c, dir := newTestConverter(t)
		writeRefFile(t, dir, "categories/Kit and Ace.json", mappings)

		parsed := &ParsedProduct{Categories: []string{"Swimwear"}, Genders: []string{"Women"}}
		resolved, err := c.ConvertCategories(ctx, parsed, seed(t))
		require.NoError(t, err)
		assert.Empty(t, resolved)
	})

	t.Run("omits mapped categories that are not seeded", func(t *testing.T) {
		c, dir := newTestConverter(t)
		writeRefFile(t, dir, "categories/Kit and Ace.json", mappings)

		// Activewear is mapped but not among the seeded categories
		parsed := &ParsedProduct{Categories: []string{"Joggers"}, Genders: []string{"Women"}}
		resolved, err := c.ConvertCategories(ctx, parsed, seed(t))
		require.NoError(t, err)
		assert.Empty(t, resolved)
	})

	t.Run("deduplicates resolved categories", func(t *testing.T) {
		c, dir := newTestConverter(t)
		writeRefFile(t, dir, "categories/Kit and Ace.json", `[
			{"title":"T-Shirts","gender":"Women","canonical_title":"Tops"},
			{"title":"Tees","gender":"Women","canonical_title":"Tops"}
		]`)

		parsed := &ParsedProduct{Categories: []string{"T-Shirts", "Tees"}, Genders: []string{"Women"}}
		resolved, err := c.ConvertCategories(ctx, parsed, seed(t))
		require.NoError(t, err)
		assert.Len(t, resolved, 1)
	})

	t.Run("fails when the mapping table is missing", func(t *testing.T) {
		c, _ := newTestConverter(t)
		parsed := &ParsedProduct{Categories: []string{"T-Shirts"}, Genders: []string{"Women"}}
		_, err := c.ConvertCategories(ctx, parsed, seed(t))
		require.Error(t, err)
	})
}

func TestBaseConverter_ConvertAttribute(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestConverter(t)

	t.Run("returns the existing attribute", func(t *testing.T) {
		existing, err := catalog.NewAttribute("Length")
		require.NoError(t, err)
		repo := &fakeAttributeRepo{attributes: []catalog.Attribute{*existing}}

		attribute, err := c.ConvertAttribute(ctx, "Length", repo)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, attribute.ID)
	})

	t.Run("builds a new attribute when none matches", func(t *testing.T) {
		attribute, err := c.ConvertAttribute(ctx, "fit", &fakeAttributeRepo{})
		require.NoError(t, err)
		assert.Equal(t, "Fit", attribute.Name)
		assert.NotEqual(t, uuid.Nil, attribute.ID)
	})
}

func TestBaseConverter_ConvertSizings(t *testing.T) {
	guide := "Size,Bust,Waist,Fabric\n" +
		"S,32-34,26,knit\n" +
		"M,34-36,28,knit\n"

	t.Run("maps guide columns to sizing options", func(t *testing.T) {
		c, dir := newTestConverter(t)
		writeRefFile(t, dir, "size_guides/Kit and Ace/Women-Tops.csv", guide)

		parsed := &ParsedProduct{SizeGuideKey: "Women-Tops"}
		variant := testVariant(t, strPtr("M"), nil, nil)

		sizings, err := c.ConvertSizings(parsed, variant)
		require.NoError(t, err)

		// The Fabric column names no dimension and is skipped
		require.Len(t, sizings, 2)
		assert.Equal(t, catalog.SizingBust, sizings[0].Option)
		assert.Equal(t, 35.0, sizings[0].Value)
		assert.Equal(t, catalog.SizingWaist, sizings[1].Option)
		assert.Equal(t, 28.0, sizings[1].Value)
		assert.Equal(t, variant.ID, sizings[0].VariantID)
	})

	t.Run("no size guide yields no sizings", func(t *testing.T) {
		c, _ := newTestConverter(t)
		sizings, err := c.ConvertSizings(&ParsedProduct{}, testVariant(t, strPtr("M"), nil, nil))
		require.NoError(t, err)
		assert.Nil(t, sizings)
	})

	t.Run("no variant size yields no sizings", func(t *testing.T) {
		c, _ := newTestConverter(t)
		sizings, err := c.ConvertSizings(&ParsedProduct{SizeGuideKey: "Women-Tops"}, testVariant(t, nil, nil, nil))
		require.NoError(t, err)
		assert.Nil(t, sizings)
	})

	t.Run("a size absent from the guide yields no sizings", func(t *testing.T) {
		c, dir := newTestConverter(t)
		writeRefFile(t, dir, "size_guides/Kit and Ace/Women-Tops.csv", guide)

		parsed := &ParsedProduct{SizeGuideKey: "Women-Tops"}
		sizings, err := c.ConvertSizings(parsed, testVariant(t, strPtr("XXL"), nil, nil))
		require.NoError(t, err)
		assert.Nil(t, sizings)
	})

	t.Run("a missing guide file fails the run", func(t *testing.T) {
		c, _ := newTestConverter(t)
		parsed := &ParsedProduct{SizeGuideKey: "Women-Missing"}
		_, err := c.ConvertSizings(parsed, testVariant(t, strPtr("M"), nil, nil))
		require.Error(t, err)
	})

	t.Run("unparsable cells are skipped", func(t *testing.T) {
		c, dir := newTestConverter(t)
		writeRefFile(t, dir, "size_guides/Kit and Ace/Women-Tops.csv",
			"Size,Bust,Waist\nM,see chart,28\n")

		parsed := &ParsedProduct{SizeGuideKey: "Women-Tops"}
		sizings, err := c.ConvertSizings(parsed, testVariant(t, strPtr("M"), nil, nil))
		require.NoError(t, err)
		require.Len(t, sizings, 1)
		assert.Equal(t, catalog.SizingWaist, sizings[0].Option)
	})
}

func TestSizingsFor(t *testing.T) {
	variantID := uuid.New()

	sizings := sizingsFor(variantID, map[catalog.SizingOption]float64{
		catalog.SizingInseam: 76.2,
		catalog.SizingWaist:  81.28,
	})

	// Options come out in the canonical dimension order
	require.Len(t, sizings, 2)
	assert.Equal(t, catalog.SizingWaist, sizings[0].Option)
	assert.Equal(t, 81.3, sizings[0].Value)
	assert.Equal(t, catalog.SizingInseam, sizings[1].Option)
	assert.Equal(t, 76.2, sizings[1].Value)
}
