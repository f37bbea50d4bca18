// Package refdata loads the per-shop reference fixtures the ingestion
// pipeline converts against: category mapping tables, color lookup
// tables and size guide CSVs. Fixtures live under a single directory:
//
//	<dir>/categories/<shop>.json
//	<dir>/colors/<shop>.json
//	<dir>/size_guides/<shop>/<key>.csv
package refdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads reference fixtures rooted at a directory
type Store struct {
	dir string
}

// NewStore creates a fixture store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// CategoryMapping maps one source category, qualified by gender, to a
// canonical category title. The canonical category carries the same
// gender as the source row.
type CategoryMapping struct {
	Title          string `json:"title"`
	Gender         string `json:"gender"`
	CanonicalTitle string `json:"canonical_title"`
}

// CategoryMappings loads the category mapping table for a shop
func (s *Store) CategoryMappings(shopName string) ([]CategoryMapping, error) {
	path := filepath.Join(s.dir, "categories", shopName+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category mappings for %s: %w", shopName, err)
	}

	var mappings []CategoryMapping
	if err := json.Unmarshal(data, &mappings); err != nil {
		return nil, fmt.Errorf("failed to parse category mappings for %s: %w", shopName, err)
	}
	return mappings, nil
}

// ColorMap loads a shop's color lookup as a name to hex map
func (s *Store) ColorMap(shopName string) (map[string]string, error) {
	path := filepath.Join(s.dir, "colors", shopName+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read color map for %s: %w", shopName, err)
	}

	var colors map[string]string
	if err := json.Unmarshal(data, &colors); err != nil {
		return nil, fmt.Errorf("failed to parse color map for %s: %w", shopName, err)
	}
	return colors, nil
}

// ColorCode is one entry of a code-based color lookup table
type ColorCode struct {
	Code string `json:"code"`
	Hex  string `json:"hex"`
}

// ColorCodes loads a shop's color lookup as a code list
func (s *Store) ColorCodes(shopName string) ([]ColorCode, error) {
	path := filepath.Join(s.dir, "colors", shopName+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read color codes for %s: %w", shopName, err)
	}

	var codes []ColorCode
	if err := json.Unmarshal(data, &codes); err != nil {
		return nil, fmt.Errorf("failed to parse color codes for %s: %w", shopName, err)
	}
	return codes, nil
}
