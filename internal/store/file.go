package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend stores the profile blob as a JSON file on disk. Writes go
// through a temp file and rename so a crash mid-write never leaves a
// truncated profile behind.
type FileBackend struct {
	path string
}

// NewFileBackend creates a file backend rooted at dataDir, creating the
// directory if needed.
func NewFileBackend(dataDir string) (*FileBackend, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	return &FileBackend{path: filepath.Join(dataDir, StorageKey+".json")}, nil
}

// Load reads the stored blob. A missing file means no profile has been saved.
func (b *FileBackend) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read profile file: %w", err)
	}
	return data, true, nil
}

// Save atomically replaces the stored blob.
func (b *FileBackend) Save(data []byte) error {
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("failed to replace profile file: %w", err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (b *FileBackend) Close() error { return nil }
