// Package filestore stores uploaded resume files behind a small Store
// interface with local-disk and S3-compatible backends.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound indicates the requested object does not exist
var ErrNotFound = errors.New("file not found")

// Store is the object storage boundary for uploaded files
type Store interface {
	// Save writes the object under key, replacing any existing content.
	Save(ctx context.Context, key string, contentType string, r io.Reader) error

	// Open returns a reader for the object. The caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object, returning ErrNotFound when it is absent.
	Delete(ctx context.Context, key string) error
}

// ResumeKey builds the object key for a student's resume upload. The original
// filename is sanitized and prefixed so re-uploads never collide.
func ResumeKey(studentID, filename string) string {
	return fmt.Sprintf("resumes/%s/%s_%s", studentID, uuid.New().String()[:8], SanitizeFilename(filename))
}

// SanitizeFilename strips path components and replaces anything outside a
// conservative character set.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" {
		return "upload"
	}
	return cleaned
}
