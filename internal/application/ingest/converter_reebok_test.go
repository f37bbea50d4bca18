package ingest

import (
	"testing"

	"github.com/chicpic/backend/internal/domain/catalog"
	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReebokConverter(t *testing.T) (*ReebokConverter, string) {
	t.Helper()
	dir := t.TempDir()
	return NewReebokConverter(refdata.NewStore(dir), zap.NewNop()), dir
}

func TestReebokConverter_ConvertSizings(t *testing.T) {
	t.Run("takes shoe sizes directly", func(t *testing.T) {
		c, _ := newReebokConverter(t)

		parsed := &ParsedProduct{SizeGuideKey: "Men-Shoes"}
		sizings, err := c.ConvertSizings(parsed, testVariant(t, strPtr("10"), nil, nil))
		require.NoError(t, err)

		require.Len(t, sizings, 1)
		assert.Equal(t, catalog.SizingShoeSize, sizings[0].Option)
		assert.Equal(t, 10.0, sizings[0].Value)
	})

	t.Run("a footwear variant without a size yields no sizings", func(t *testing.T) {
		c, _ := newReebokConverter(t)

		parsed := &ParsedProduct{SizeGuideKey: "Women-Shoes"}
		sizings, err := c.ConvertSizings(parsed, testVariant(t, nil, nil, nil))
		require.NoError(t, err)
		assert.Nil(t, sizings)
	})

	t.Run("an unparsable shoe size fails the run", func(t *testing.T) {
		c, _ := newReebokConverter(t)

		parsed := &ParsedProduct{SizeGuideKey: "Men-Shoes"}
		_, err := c.ConvertSizings(parsed, testVariant(t, strPtr("M"), nil, nil))
		require.Error(t, err)
	})

	t.Run("apparel guides go through the base path", func(t *testing.T) {
		c, dir := newReebokConverter(t)
		writeRefFile(t, dir, "size_guides/Reebok/Men-Tops.csv",
			"Size,Chest\nM,38-40\n")

		parsed := &ParsedProduct{SizeGuideKey: "Men-Tops"}
		sizings, err := c.ConvertSizings(parsed, testVariant(t, strPtr("M"), nil, nil))
		require.NoError(t, err)

		require.Len(t, sizings, 1)
		assert.Equal(t, catalog.SizingChest, sizings[0].Option)
		assert.Equal(t, 39.0, sizings[0].Value)
	})
}
