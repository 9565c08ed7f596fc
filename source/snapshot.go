package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/segmentio/encoding/json"
	"gopkg.in/yaml.v3"
)

// Snapshot is an exported copy of a journal's data. It is the file format
// read by the CLI and implements Source in memory.
type Snapshot struct {
	Journals []Journal         `yaml:"journals" json:"journals"`
	Issues   []Issue           `yaml:"issues" json:"issues"`
	Sections []Section         `yaml:"sections" json:"sections"`
	Articles []SnapshotArticle `yaml:"articles" json:"articles"`
}

// SnapshotArticle is an article with its publication data inlined.
type SnapshotArticle struct {
	Article   `yaml:",inline"`
	Authors   []Author            `yaml:"authors,omitempty" json:"authors,omitempty"`
	Citations []Citation          `yaml:"citations,omitempty" json:"citations,omitempty"`
	Keywords  map[string][]string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Agencies  map[string][]string `yaml:"agencies,omitempty" json:"agencies,omitempty"`
	Subjects  []string            `yaml:"subjects,omitempty" json:"subjects,omitempty"`
	Galleys   []Galley            `yaml:"galleys,omitempty" json:"galleys,omitempty"`
}

// Ensure Snapshot implements Source.
var _ Source = (*Snapshot)(nil)

// LoadSnapshot reads a snapshot file. The encoding is chosen by extension:
// .json is JSON, anything else is YAML.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	encoding := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		encoding = "json"
	}
	return ParseSnapshot(f, encoding)
}

// ParseSnapshot decodes a snapshot in the given encoding ("yaml" or "json").
func ParseSnapshot(r io.Reader, encoding string) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot
	switch encoding {
	case "json":
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parsing snapshot JSON: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parsing snapshot YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown snapshot encoding: %s", encoding)
	}
	return &snap, nil
}

// Journal returns the journal with the given ID.
func (s *Snapshot) Journal(_ context.Context, id int64) (*Journal, error) {
	for i := range s.Journals {
		if s.Journals[i].ID == id {
			return &s.Journals[i], nil
		}
	}
	return nil, fmt.Errorf("journal %d: %w", id, ErrNotFound)
}

// Issue returns the issue with the given ID.
func (s *Snapshot) Issue(_ context.Context, id int64) (*Issue, error) {
	for i := range s.Issues {
		if s.Issues[i].ID == id {
			return &s.Issues[i], nil
		}
	}
	return nil, fmt.Errorf("issue %d: %w", id, ErrNotFound)
}

// Section returns the section with the given ID.
func (s *Snapshot) Section(_ context.Context, id int64) (*Section, error) {
	for i := range s.Sections {
		if s.Sections[i].ID == id {
			return &s.Sections[i], nil
		}
	}
	return nil, fmt.Errorf("section %d: %w", id, ErrNotFound)
}

// PublishedArticles returns the published articles of an issue in file order.
func (s *Snapshot) PublishedArticles(_ context.Context, issueID, journalID int64) ([]*Article, error) {
	var articles []*Article
	for i := range s.Articles {
		a := &s.Articles[i].Article
		if a.IssueID == issueID && a.JournalID == journalID && a.Status == StatusPublished {
			articles = append(articles, a)
		}
	}
	return articles, nil
}

// Authors returns the authors of a publication ordered by sequence.
func (s *Snapshot) Authors(_ context.Context, publicationID int64) ([]Author, error) {
	a := s.article(publicationID)
	if a == nil {
		return nil, nil
	}
	authors := append([]Author(nil), a.Authors...)
	sort.SliceStable(authors, func(i, j int) bool { return authors[i].Seq < authors[j].Seq })
	return authors, nil
}

// Citations returns the citations of a publication ordered by sequence.
func (s *Snapshot) Citations(_ context.Context, publicationID int64) ([]Citation, error) {
	a := s.article(publicationID)
	if a == nil {
		return nil, nil
	}
	citations := append([]Citation(nil), a.Citations...)
	sort.SliceStable(citations, func(i, j int) bool { return citations[i].Seq < citations[j].Seq })
	return citations, nil
}

// Keywords returns the keywords of a publication in a locale.
func (s *Snapshot) Keywords(_ context.Context, publicationID int64, locale string) ([]string, error) {
	if a := s.article(publicationID); a != nil {
		return a.Keywords[locale], nil
	}
	return nil, nil
}

// FundingAgencies returns the funding agencies of a publication in a locale.
func (s *Snapshot) FundingAgencies(_ context.Context, publicationID int64, locale string) ([]string, error) {
	if a := s.article(publicationID); a != nil {
		return a.Agencies[locale], nil
	}
	return nil, nil
}

// Subjects returns the subject codes of a publication.
func (s *Snapshot) Subjects(_ context.Context, publicationID int64) ([]string, error) {
	if a := s.article(publicationID); a != nil {
		return a.Subjects, nil
	}
	return nil, nil
}

// Galleys returns the galleys of a publication.
func (s *Snapshot) Galleys(_ context.Context, publicationID int64) ([]Galley, error) {
	if a := s.article(publicationID); a != nil {
		return a.Galleys, nil
	}
	return nil, nil
}

func (s *Snapshot) article(publicationID int64) *SnapshotArticle {
	for i := range s.Articles {
		if s.Articles[i].PublicationID == publicationID {
			return &s.Articles[i]
		}
	}
	return nil
}
