// Package archive packs an RSCI document and the article PDFs it refers to
// into the ZIP upload expected by the RSCI markup service.
package archive

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/lehigh-university-libraries/rsciexport/notify"
	"github.com/lehigh-university-libraries/rsciexport/source"
)

// MarkupFileName is the name of the XML document inside the archive.
const MarkupFileName = "Markup_unicode.xml"

// File is a full-text file to add to the archive.
type File struct {
	// Name is the entry name inside the archive.
	Name string
	// Path is the location of the file on disk.
	Path string
}

// FileName returns the archive name for an issue, e.g. "issue-3-2023.zip".
func FileName(issue *source.Issue) string {
	return fmt.Sprintf("issue-%s-%d.zip", issue.Number, issue.Year)
}

// Collect lists the PDF galley files of the submissions in bundle. Each file
// is named the way the document's fullText file node names it. Files that
// are missing on disk or collide with an earlier name are skipped with a
// warning.
func Collect(bundle *source.Bundle, filesDir string, sink notify.Sink) []File {
	if sink == nil {
		sink = notify.Discard
	}

	primary := bundle.Journal.PrimaryLocale
	seen := map[string]bool{MarkupFileName: true}
	var files []File
	for _, sub := range bundle.Submissions {
		galley := sub.PDFGalley()
		if galley == nil || galley.File == nil {
			continue
		}
		name := entryName(galley.File.Name(primary))
		if name == "" {
			continue
		}

		p := filepath.Join(filesDir, filepath.FromSlash(galley.File.Path))
		if _, err := os.Stat(p); err != nil {
			sink.Warn(notify.Warning{
				Code:      notify.CodeGalleyFile,
				Subject:   galley.File.Path,
				ArticleID: sub.ID,
				Message:   fmt.Sprintf("galley file not added to archive: %v", err),
			})
			continue
		}
		if seen[name] {
			sink.Warn(notify.Warning{
				Code:      notify.CodeGalleyFile,
				Subject:   name,
				ArticleID: sub.ID,
				Message:   "another article already uses this file name; file not added to archive",
			})
			continue
		}
		seen[name] = true
		files = append(files, File{Name: name, Path: p})
	}
	return files
}

// Package writes a ZIP archive holding document as MarkupFileName followed
// by files.
func Package(w io.Writer, document []byte, files []File) error {
	zw := zip.NewWriter(w)
	modified := time.Now()

	entry, err := create(zw, MarkupFileName, modified)
	if err != nil {
		return err
	}
	if _, err := entry.Write(document); err != nil {
		return fmt.Errorf("writing %s: %w", MarkupFileName, err)
	}

	for _, f := range files {
		if err := addFile(zw, f, modified); err != nil {
			return err
		}
	}
	return zw.Close()
}

func addFile(zw *zip.Writer, f File, modified time.Time) error {
	in, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Path, err)
	}
	defer in.Close()

	entry, err := create(zw, entryName(f.Name), modified)
	if err != nil {
		return err
	}
	if _, err := io.Copy(entry, in); err != nil {
		return fmt.Errorf("archiving %s: %w", f.Path, err)
	}
	return nil
}

func create(zw *zip.Writer, name string, modified time.Time) (io.Writer, error) {
	entry, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return nil, fmt.Errorf("creating archive entry %s: %w", name, err)
	}
	return entry, nil
}

// entryName keeps only the base name so entries stay at the archive root.
func entryName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	if name == "" {
		return ""
	}
	base := path.Base(name)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}
