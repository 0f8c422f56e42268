package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// FileStore keeps all reports in one JSON document, newest first. A single
// mutex serializes every read-modify-write cycle so concurrent submissions
// cannot lose each other's writes.
type FileStore struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

// NewFileStore creates a file-backed store. The parent directory is created
// if missing.
func NewFileStore(path string, log zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}
	return &FileStore{path: path, log: log}, nil
}

// Save appends the report at the head of the list and assigns its id.
func (s *FileStore) Save(_ context.Context, r *Report) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.load()

	now := time.Now()
	r.ID = newReportID(now)
	r.FechaReporte = now

	all = append([]Report{*r}, all...)

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode reports: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write reports file: %w", err)
	}

	return r.ID, nil
}

// List returns up to limit reports, newest first.
func (s *FileStore) List(_ context.Context, limit int) ([]Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.load()
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// load reads the backing document. A missing or unparseable file reads as
// an empty list so a corrupt document never blocks new submissions.
func (s *FileStore) load() []Report {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("failed to read reports file")
		}
		return []Report{}
	}

	var all []Report
	if err := json.Unmarshal(data, &all); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("reports file unparseable, starting empty")
		return []Report{}
	}
	return all
}
