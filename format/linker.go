package format

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/rsciexport/source"
)

// Linker builds the public URL of an article. A zero galleyID links to the
// article landing page.
type Linker interface {
	ArticleURL(journal *source.Journal, articleID, galleyID int64) string
}

// PathLinker builds OJS-style URLs:
// <BaseURL>/index.php/<journal path>/article/view/<article>[/<galley>].
type PathLinker struct {
	BaseURL string
	// ContextPath overrides the journal path when set.
	ContextPath string
}

// ArticleURL implements Linker.
func (l PathLinker) ArticleURL(journal *source.Journal, articleID, galleyID int64) string {
	contextPath := l.ContextPath
	if contextPath == "" && journal != nil {
		contextPath = journal.Path
	}

	segments := []string{
		strings.TrimRight(l.BaseURL, "/"),
		"index.php",
		url.PathEscape(contextPath),
		"article",
		"view",
		strconv.FormatInt(articleID, 10),
	}
	if galleyID != 0 {
		segments = append(segments, strconv.FormatInt(galleyID, 10))
	}
	return strings.Join(segments, "/")
}
