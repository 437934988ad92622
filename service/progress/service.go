package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/elC0mpa/azure-storage-doctor/model"
	"go.uber.org/zap"
)

// NewService loads the store at path. A missing file is an empty store; an
// unreadable one is an error since resuming from it would duplicate work.
func NewService(path string, logger *zap.Logger) (*service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &service{
		path:   path,
		keys:   make(map[string]struct{}),
		logger: logger,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read progress file %s: %w", path, err)
	}

	var rows []model.ResultRow
	if len(data) > 0 {
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("failed to parse progress file %s: %w", path, err)
		}
	}

	for _, row := range rows {
		if s.Has(row.Key()) {
			logger.Warn("dropping duplicate progress row", zap.String("key", row.Key()))
			continue
		}
		s.add(row)
	}

	logger.Debug("progress loaded", zap.String("path", path), zap.Int("rows", len(s.rows)))
	return s, nil
}

func (s *service) Has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Append adds row and rewrites the store. A key that is already present
// is rejected.
func (s *service) Append(row model.ResultRow) error {
	if s.Has(row.Key()) {
		return fmt.Errorf("%w: %s is already recorded", model.ErrInvalidInput, row.Key())
	}

	s.add(row)
	if err := s.save(); err != nil {
		s.rows = s.rows[:len(s.rows)-1]
		delete(s.keys, row.Key())
		return err
	}
	return nil
}

// Rows returns a copy of the recorded rows in insertion order
func (s *service) Rows() []model.ResultRow {
	rows := make([]model.ResultRow, len(s.rows))
	copy(rows, s.rows)
	return rows
}

// Reset discards every recorded row
func (s *service) Reset() error {
	s.rows = nil
	s.keys = make(map[string]struct{})
	return s.save()
}

func (s *service) add(row model.ResultRow) {
	s.rows = append(s.rows, row)
	s.keys[row.Key()] = struct{}{}
}

// save writes the whole table to a temporary file in the same directory
// and renames it over the store, so a crash leaves either the old or the
// new table on disk.
func (s *service) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary progress file: %w", err)
	}
	defer os.Remove(tmp.Name())

	rows := s.rows
	if rows == nil {
		rows = []model.ResultRow{}
	}

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode progress: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close progress file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace progress file: %w", err)
	}
	return nil
}
