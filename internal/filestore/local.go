package filestore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/careerhq/career-platform/shared/logger"
)

// LocalStore keeps objects under a root directory on disk
type LocalStore struct {
	root   string
	logger *logger.Logger
}

// NewLocalStore creates a local store rooted at dir, creating it if needed
func NewLocalStore(dir string, log *logger.Logger) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("local store directory is required")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}

	return &LocalStore{root: dir, logger: log}, nil
}

func (s *LocalStore) path(key string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(key))

	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return full, nil
}

// Save implements Store
func (s *LocalStore) Save(_ context.Context, key string, _ string, r io.Reader) error {
	full, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", key, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return fmt.Errorf("failed to write file %s: %w", key, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", key, err)
	}

	s.logger.Debug("Stored file locally",
		slog.String("key", key),
	)

	return nil
}

// Open implements Store
func (s *LocalStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	full, err := s.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open file %s: %w", key, err)
	}

	return f, nil
}

// Delete implements Store
func (s *LocalStore) Delete(_ context.Context, key string) error {
	full, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		return fmt.Errorf("failed to delete file %s: %w", key, err)
	}

	return nil
}
