// Package fulltext reads article text from full-text galley files.
package fulltext

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor returns the plain text of a stored file.
type Extractor interface {
	Text(path string) (string, error)
}

// PDFExtractor extracts text from PDF files. Relative paths are resolved
// against FilesDir.
type PDFExtractor struct {
	FilesDir string
}

// Resolve returns the filesystem location of a stored file path.
func (e PDFExtractor) Resolve(path string) string {
	if filepath.IsAbs(path) || e.FilesDir == "" {
		return path
	}
	return filepath.Join(e.FilesDir, path)
}

// Text returns the plain text of every page, one page per line block.
// Pages that fail to decode are skipped.
func (e PDFExtractor) Text(path string) (text string, err error) {
	full := e.Resolve(path)

	// The PDF decoder panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("reading PDF %s: %v", full, r)
		}
	}()

	f, r, err := pdf.Open(full)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", full, err)
	}
	defer f.Close()

	var builder strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(pageText)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(path string) (string, error)

// Text calls f(path).
func (f ExtractorFunc) Text(path string) (string, error) { return f(path) }
