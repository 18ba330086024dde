// Package jsonfile stores thoughts and tasks as JSON arrays on local disk.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

const (
	thoughtsFile = "thoughts.json"
	tasksFile    = "tasks.json"
)

// fileStore reads and rewrites one JSON array file. The mutex serialises
// access within the process only.
type fileStore[R any] struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

func newFileStore[R any](dir, name string, logger *zap.Logger) (*fileStore[R], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	s := &fileStore[R]{path: filepath.Join(dir, name), logger: logger}
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(s.path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("initialising %s: %w", name, err)
		}
	}
	return s, nil
}

// load returns every record. A missing or unreadable file reads as empty.
// Callers must hold mu.
func (s *fileStore[R]) load() []R {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Failed to read data file", zap.String("path", s.path), zap.Error(err))
		}
		return []R{}
	}

	var records []R
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("Data file is corrupt, treating as empty", zap.String("path", s.path), zap.Error(err))
		return []R{}
	}
	if records == nil {
		records = []R{}
	}
	return records
}

// save rewrites the whole file. The new content is written to a sibling
// temp file and renamed over the old one. Callers must hold mu.
func (s *fileStore[R]) save(records []R) error {
	if records == nil {
		records = []R{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// mutate loads the records, applies fn and saves the result when fn
// reports a change.
func (s *fileStore[R]) mutate(fn func([]R) ([]R, bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, changed, err := fn(s.load())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return s.save(records)
}

// snapshot returns the current records
func (s *fileStore[R]) snapshot() []R {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}
