package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/existflow/daysince/internal/model"
)

// JSONFile keeps the collection in a single file holding a JSON array
type JSONFile struct {
	path string
}

// NewJSONFile returns a backend for the file at path. The file does not
// need to exist.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the backing file path
func (f *JSONFile) Path() string {
	return f.path
}

// Load reads the file. A missing file is an empty collection; a file that
// does not parse is an ErrCorrupt error.
func (f *JSONFile) Load(_ context.Context) ([]model.Timer, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return []model.Timer{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	var timers []model.Timer
	if err := json.Unmarshal(bytes.TrimSpace(data), &timers); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	if timers == nil {
		timers = []model.Timer{}
	}
	return timers, nil
}

// Save overwrites the file with the whole collection. The data goes to a
// temp file first and is renamed into place.
func (f *JSONFile) Save(_ context.Context, timers []model.Timer) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	if timers == nil {
		timers = []model.Timer{}
	}
	data, err := json.MarshalIndent(timers, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal timers: %w", err)
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (f *JSONFile) Close() error {
	return nil
}
