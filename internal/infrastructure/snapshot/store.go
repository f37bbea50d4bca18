// Package snapshot persists per-shop run snapshots as JSON files so a
// run can resume from an earlier stage without refetching.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and writes snapshot files under a root directory, one
// subdirectory per shop.
type Store struct {
	dir string
}

// NewStore creates a snapshot store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// SaveJSON writes a snapshot atomically: the payload goes to a temp
// file first and moves into place with a rename, so a crash mid-write
// never leaves a truncated snapshot behind.
func (s *Store) SaveJSON(shopName, fileName string, v any) error {
	dir := filepath.Join(s.dir, shopName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory for %s: %w", shopName, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s/%s: %w", shopName, fileName, err)
	}

	tmp, err := os.CreateTemp(dir, fileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot for %s: %w", shopName, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot %s/%s: %w", shopName, fileName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot %s/%s: %w", shopName, fileName, err)
	}

	if err := os.Rename(tmpName, filepath.Join(dir, fileName)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move snapshot %s/%s into place: %w", shopName, fileName, err)
	}
	return nil
}

// LoadJSON reads a snapshot file into v
func (s *Store) LoadJSON(shopName, fileName string, v any) error {
	path := filepath.Join(s.dir, shopName, fileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s/%s: %w", shopName, fileName, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode snapshot %s/%s: %w", shopName, fileName, err)
	}
	return nil
}
