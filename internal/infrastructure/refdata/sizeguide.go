package refdata

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// sizeColumn is the key column every size guide must carry
const sizeColumn = "Size"

// SizeGuide is a parsed size guide table. Each row maps dimension
// column names to raw cell values; cells may hold plain numbers,
// ranges like "34-36" or alternatives like "34/36".
type SizeGuide struct {
	Columns []string
	rows    []map[string]string
}

// SizeGuide loads the size guide CSV for a shop and size guide key
func (s *Store) SizeGuide(shopName, key string) (*SizeGuide, error) {
	path := filepath.Join(s.dir, "size_guides", shopName, key+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open size guide %s/%s: %w", shopName, key, err)
	}
	defer f.Close()

	guide, err := parseSizeGuide(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse size guide %s/%s: %w", shopName, key, err)
	}
	return guide, nil
}

// parseSizeGuide reads a size guide table from CSV data
func parseSizeGuide(r io.Reader) (*SizeGuide, error) {
	buf := bufio.NewReader(r)

	// Detect and strip UTF-8 BOM
	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read size guide: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	reader := csv.NewReader(buf)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("size guide has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read size guide header: %w", err)
	}

	hasSize := false
	for _, col := range header {
		if col == sizeColumn {
			hasSize = true
			break
		}
	}
	if !hasSize {
		return nil, fmt.Errorf("size guide is missing the %q column", sizeColumn)
	}

	guide := &SizeGuide{Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read size guide row: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		guide.rows = append(guide.rows, row)
	}

	return guide, nil
}

// RowForSize returns the row whose Size cell equals size
func (g *SizeGuide) RowForSize(size string) (map[string]string, bool) {
	for _, row := range g.rows {
		if row[sizeColumn] == size {
			return row, true
		}
	}
	return nil, false
}

// DimensionColumns returns the column names excluding the Size column
func (g *SizeGuide) DimensionColumns() []string {
	cols := make([]string, 0, len(g.Columns))
	for _, col := range g.Columns {
		if col != sizeColumn {
			cols = append(cols, col)
		}
	}
	return cols
}
