package filestore

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerhq/career-platform/shared/logger"
)

func newTestLocalStore(t *testing.T) *LocalStore {
	t.Helper()

	quiet := &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	store, err := NewLocalStore(t.TempDir(), quiet)
	require.NoError(t, err)
	return store
}

func TestLocalStore_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestLocalStore(t)

	key := "resumes/student-1/abc_resume.pdf"
	err := store.Save(ctx, key, "application/pdf", strings.NewReader("resume bytes"))
	require.NoError(t, err)

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "resume bytes", string(data))

	require.NoError(t, store.Delete(ctx, key))

	_, err = store.Open(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newTestLocalStore(t)

	key := "resumes/student-1/abc_resume.txt"
	require.NoError(t, store.Save(ctx, key, "text/plain", strings.NewReader("first")))
	require.NoError(t, store.Save(ctx, key, "text/plain", strings.NewReader("second")))

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestLocalStore_OpenMissing(t *testing.T) {
	store := newTestLocalStore(t)

	_, err := store.Open(context.Background(), "resumes/nobody/missing.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_DeleteMissing(t *testing.T) {
	store := newTestLocalStore(t)

	err := store.Delete(context.Background(), "resumes/nobody/missing.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store := newTestLocalStore(t)

	for _, key := range []string{"../outside.txt", "a/../../outside.txt"} {
		err := store.Save(ctx, key, "text/plain", strings.NewReader("x"))
		assert.Error(t, err, "key %q should be rejected", key)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name", "resume.pdf", "resume.pdf"},
		{"spaces replaced", "my resume final.pdf", "my_resume_final.pdf"},
		{"path stripped", "/etc/passwd", "passwd"},
		{"windows path stripped", `C:\Users\me\resume.docx`, "resume.docx"},
		{"traversal stripped", "../../secret.txt", "secret.txt"},
		{"unicode replaced", "résumé.pdf", "r_sum_.pdf"},
		{"empty input", "", "upload"},
		{"only dots", "...", "upload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestResumeKey(t *testing.T) {
	key := ResumeKey("student-42", "my resume.pdf")

	assert.True(t, strings.HasPrefix(key, "resumes/student-42/"))
	assert.True(t, strings.HasSuffix(key, "_my_resume.pdf"))

	// Unique per upload so re-uploads never collide.
	assert.NotEqual(t, key, ResumeKey("student-42", "my resume.pdf"))
}
