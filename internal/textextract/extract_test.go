package textextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		filename  string
		supported bool
	}{
		{"resume.pdf", true},
		{"resume.PDF", true},
		{"resume.docx", true},
		{"resume.txt", true},
		{"resume.doc", false},
		{"resume.rtf", false},
		{"resume", false},
		{"archive.tar.gz", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.supported, Supported(tt.filename))
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("cv.pdf"))
	assert.Equal(t, docxContentType, ContentType("cv.docx"))
	assert.Equal(t, "text/plain", ContentType("cv.txt"))
	assert.Equal(t, "application/octet-stream", ContentType("cv.exe"))
}

func TestExtract_PlainText(t *testing.T) {
	text, err := Extract("resume.txt", []byte("Go developer, 3 years"))
	require.NoError(t, err)
	assert.Equal(t, "Go developer, 3 years", text)
}

func TestExtract_UnsupportedType(t *testing.T) {
	_, err := Extract("resume.odt", []byte("whatever"))
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtract_CorruptPDF(t *testing.T) {
	_, err := Extract("resume.pdf", []byte("this is not a pdf"))
	require.Error(t, err)
}

func TestExtract_CorruptDocx(t *testing.T) {
	_, err := Extract("resume.docx", []byte("this is not a docx"))
	require.Error(t, err)
}
