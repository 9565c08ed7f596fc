// Package source defines the read-only journal data an RSCI export is built
// from, the collaborator contract that supplies it, and two implementations:
// in-memory snapshots (YAML/JSON) and a SQLite store.
package source

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Source provides the journal data needed for an export.
type Source interface {
	Journal(ctx context.Context, id int64) (*Journal, error)
	Issue(ctx context.Context, id int64) (*Issue, error)
	// PublishedArticles returns the published articles of an issue in
	// storage order.
	PublishedArticles(ctx context.Context, issueID, journalID int64) ([]*Article, error)
	Authors(ctx context.Context, publicationID int64) ([]Author, error)
	Citations(ctx context.Context, publicationID int64) ([]Citation, error)
	Section(ctx context.Context, id int64) (*Section, error)
	Keywords(ctx context.Context, publicationID int64, locale string) ([]string, error)
	FundingAgencies(ctx context.Context, publicationID int64, locale string) ([]string, error)
	Subjects(ctx context.Context, publicationID int64) ([]string, error)
	Galleys(ctx context.Context, publicationID int64) ([]Galley, error)
}

// Submission is an article with everything the exporter reads about it.
type Submission struct {
	*Article
	Section   *Section
	Authors   []Author
	Citations []Citation
	// Keywords and Agencies are keyed by locale.
	Keywords map[string][]string
	Agencies map[string][]string
	Subjects []string
	Galleys  []Galley
}

// PDFLabel is the galley label of an article's full-text PDF.
const PDFLabel = "PDF"

// PDFGalley returns the first galley labelled exactly "PDF", or nil.
func (s *Submission) PDFGalley() *Galley {
	for i := range s.Galleys {
		if s.Galleys[i].Label == PDFLabel {
			return &s.Galleys[i]
		}
	}
	return nil
}

// Bundle is a fully resolved issue, ready for serialization.
type Bundle struct {
	Journal     *Journal
	Issue       *Issue
	Submissions []*Submission
}

// Load resolves an issue and all of its published articles from src.
func Load(ctx context.Context, src Source, journalID, issueID int64) (*Bundle, error) {
	journal, err := src.Journal(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("loading journal %d: %w", journalID, err)
	}

	issue, err := src.Issue(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("loading issue %d: %w", issueID, err)
	}
	if issue.JournalID != journal.ID {
		return nil, fmt.Errorf("issue %d does not belong to journal %d: %w", issueID, journalID, ErrNotFound)
	}

	articles, err := src.PublishedArticles(ctx, issueID, journalID)
	if err != nil {
		return nil, fmt.Errorf("loading articles of issue %d: %w", issueID, err)
	}

	bundle := &Bundle{
		Journal:     journal,
		Issue:       issue,
		Submissions: make([]*Submission, 0, len(articles)),
	}

	sections := make(map[int64]*Section)
	for _, article := range articles {
		sub, err := loadSubmission(ctx, src, journal, article, sections)
		if err != nil {
			return nil, fmt.Errorf("loading article %d: %w", article.ID, err)
		}
		bundle.Submissions = append(bundle.Submissions, sub)
	}

	return bundle, nil
}

func loadSubmission(ctx context.Context, src Source, journal *Journal, article *Article, sections map[int64]*Section) (*Submission, error) {
	sub := &Submission{
		Article:  article,
		Keywords: make(map[string][]string),
		Agencies: make(map[string][]string),
	}
	pubID := article.PublicationID

	section, ok := sections[article.SectionID]
	if !ok {
		var err error
		section, err = src.Section(ctx, article.SectionID)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", article.SectionID, err)
		}
		sections[article.SectionID] = section
	}
	sub.Section = section

	var err error
	if sub.Authors, err = src.Authors(ctx, pubID); err != nil {
		return nil, fmt.Errorf("authors: %w", err)
	}
	if sub.Citations, err = src.Citations(ctx, pubID); err != nil {
		return nil, fmt.Errorf("citations: %w", err)
	}
	if sub.Subjects, err = src.Subjects(ctx, pubID); err != nil {
		return nil, fmt.Errorf("subjects: %w", err)
	}
	if sub.Galleys, err = src.Galleys(ctx, pubID); err != nil {
		return nil, fmt.Errorf("galleys: %w", err)
	}

	for _, locale := range journal.Locales() {
		keywords, err := src.Keywords(ctx, pubID, locale)
		if err != nil {
			return nil, fmt.Errorf("keywords (%s): %w", locale, err)
		}
		sub.Keywords[locale] = keywords

		agencies, err := src.FundingAgencies(ctx, pubID, locale)
		if err != nil {
			return nil, fmt.Errorf("funding agencies (%s): %w", locale, err)
		}
		sub.Agencies[locale] = agencies
	}

	return sub, nil
}
