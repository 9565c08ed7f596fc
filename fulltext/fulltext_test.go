package fulltext

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end string
		want       string
	}{
		{"between markers", "hello world END", "hello", "END", "hello world "},
		{"empty start key", "no marker here", "", "END", ""},
		{"start key missing", "no marker here", "START", "END", ""},
		{"end before start", "abc END xyz START", "START", "END", "START"},
		{"end before start with tail", "abc END xyz START tail", "START", "END", "START tail"},
		{"empty end key", "intro START body", "START", "", "START body"},
		{"end key missing", "START body", "START", "FIN", "START body"},
		{"last end occurrence", "START a END b END c", "START", "END", "START a END b "},
		{"first start occurrence", "x START a START b END", "START", "END", "START a START b "},
		{"same marker", "# one # two #", "#", "#", "# one # two "},
		{"cyrillic", "Аннотация. Введение текст Литература список", "Введение", "Литература", "Введение текст "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Excerpt(tc.text, tc.start, tc.end))
		})
	}
}

func TestPDFExtractorResolve(t *testing.T) {
	e := PDFExtractor{FilesDir: "/srv/files"}
	assert.Equal(t, filepath.Join("/srv/files", "journals/1/a.pdf"), e.Resolve("journals/1/a.pdf"))
	assert.Equal(t, "/abs/a.pdf", e.Resolve("/abs/a.pdf"))
	assert.Equal(t, "rel.pdf", PDFExtractor{}.Resolve("rel.pdf"))
}

func TestPDFExtractorMissingFile(t *testing.T) {
	e := PDFExtractor{FilesDir: t.TempDir()}
	_, err := e.Text("missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.pdf")
}

func TestPDFExtractorNotAPDF(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bogus.pdf"), []byte("plain text, not a PDF"), 0o644))

	_, err := PDFExtractor{FilesDir: dir}.Text("bogus.pdf")
	assert.Error(t, err)
}

func TestExtractorFunc(t *testing.T) {
	var e Extractor = ExtractorFunc(func(path string) (string, error) {
		if path == "" {
			return "", errors.New("no path")
		}
		return "text of " + path, nil
	})
	text, err := e.Text("a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "text of a.pdf", text)
}
