// Package history tracks how keywords rise and fall across a rolling
// multi-day window and classifies them as new, rising, stable or falling.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// History is the persisted rolling state: per-date keyword counts plus a bit
// of bookkeeping. Dates are keyed as YYYY-MM-DD.
type History struct {
	Daily    map[string]map[string]int `json:"daily"`
	Metadata Metadata                  `json:"metadata"`
}

type Metadata struct {
	UpdatedAt  time.Time `json:"updated_at"`
	WindowDays int       `json:"window_days"`
}

// Store abstracts where the history lives, so tests run in memory and
// production picks between the JSON file and Postgres.
type Store interface {
	Load() (History, error)
	Save(History) error
}

// FileStore persists the history as a single JSON document. Saves write a
// temp file in the same directory and rename it over the target, so a crash
// mid-write never leaves a half-written store behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the whole store into memory. A missing or empty file is a
// normal first run and yields an empty history.
func (s *FileStore) Load() (History, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return History{}, nil
	}
	if err != nil {
		return History{}, fmt.Errorf("read history file: %w", err)
	}
	if len(data) == 0 {
		return History{}, nil
	}

	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return History{}, fmt.Errorf("decode history file: %w", err)
	}
	return h, nil
}

// Save atomically replaces the store file with the given history.
func (s *FileStore) Save(h History) error {
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}

// MemoryStore keeps the history in memory. Used by tests and dry runs.
type MemoryStore struct {
	history History
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (History, error) {
	return s.history, nil
}

func (s *MemoryStore) Save(h History) error {
	s.history = h
	return nil
}
