package source

import (
	"sort"
)

// StatusPublished is the submission status of a published article.
const StatusPublished = 3

// Localized maps a locale identifier (e.g. "en_US") to text.
type Localized map[string]string

// Get returns the text for locale, or "" when the locale has no entry.
func (l Localized) Get(locale string) string {
	if l == nil {
		return ""
	}
	return l[locale]
}

// First returns the text for the preferred locale when present and non-empty,
// otherwise the first non-empty value in locale order.
func (l Localized) First(preferred string) string {
	if v := l.Get(preferred); v != "" {
		return v
	}
	locales := make([]string, 0, len(l))
	for locale := range l {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	for _, locale := range locales {
		if l[locale] != "" {
			return l[locale]
		}
	}
	return ""
}

// Journal is the context an issue belongs to.
type Journal struct {
	ID               int64     `yaml:"id" json:"id"`
	Path             string    `yaml:"path,omitempty" json:"path,omitempty"`
	PrintISSN        string    `yaml:"print_issn,omitempty" json:"print_issn,omitempty"`
	OnlineISSN       string    `yaml:"online_issn,omitempty" json:"online_issn,omitempty"`
	Names            Localized `yaml:"names" json:"names"`
	PrimaryLocale    string    `yaml:"primary_locale" json:"primary_locale"`
	SupportedLocales []string  `yaml:"supported_locales" json:"supported_locales"`
}

// Locales returns the supported locales, or just the primary locale when
// none are configured.
func (j *Journal) Locales() []string {
	if len(j.SupportedLocales) == 0 {
		return []string{j.PrimaryLocale}
	}
	return j.SupportedLocales
}

// Issue is a single journal issue.
type Issue struct {
	ID          int64     `yaml:"id" json:"id"`
	JournalID   int64     `yaml:"journal_id" json:"journal_id"`
	Volume      string    `yaml:"volume,omitempty" json:"volume,omitempty"`
	Number      string    `yaml:"number,omitempty" json:"number,omitempty"`
	Year        int       `yaml:"year,omitempty" json:"year,omitempty"`
	CoverImages Localized `yaml:"cover_images,omitempty" json:"cover_images,omitempty"`
}

// Section groups articles inside an issue.
type Section struct {
	ID      int64     `yaml:"id" json:"id"`
	Titles  Localized `yaml:"titles" json:"titles"`
	Abbrevs Localized `yaml:"abbrevs,omitempty" json:"abbrevs,omitempty"`
}

// Article is a submission together with its current publication.
type Article struct {
	ID            int64     `yaml:"id" json:"id"`
	PublicationID int64     `yaml:"publication_id" json:"publication_id"`
	JournalID     int64     `yaml:"journal_id" json:"journal_id"`
	IssueID       int64     `yaml:"issue_id" json:"issue_id"`
	SectionID     int64     `yaml:"section_id" json:"section_id"`
	Status        int       `yaml:"status" json:"status"`
	Locale        string    `yaml:"locale" json:"locale"`
	Titles        Localized `yaml:"titles" json:"titles"`
	Abstracts     Localized `yaml:"abstracts,omitempty" json:"abstracts,omitempty"`
	Pages         string    `yaml:"pages,omitempty" json:"pages,omitempty"`
	DateSubmitted string    `yaml:"date_submitted,omitempty" json:"date_submitted,omitempty"`
	DOI           string    `yaml:"doi,omitempty" json:"doi,omitempty"`
}

// StartingPage returns the first page number of the article.
func (a *Article) StartingPage() int {
	start, _ := PageRange(a.Pages)
	return start
}

// EndingPage returns the last page number of the article.
func (a *Article) EndingPage() int {
	_, end := PageRange(a.Pages)
	return end
}

// Author is a contributor of a publication.
type Author struct {
	Seq          int       `yaml:"seq" json:"seq"`
	GivenNames   Localized `yaml:"given_names,omitempty" json:"given_names,omitempty"`
	FamilyNames  Localized `yaml:"family_names,omitempty" json:"family_names,omitempty"`
	Affiliations Localized `yaml:"affiliations,omitempty" json:"affiliations,omitempty"`
	ORCID        string    `yaml:"orcid,omitempty" json:"orcid,omitempty"`
	Email        string    `yaml:"email,omitempty" json:"email,omitempty"`
	Country      string    `yaml:"country,omitempty" json:"country,omitempty"`
}

// Citation is a raw reference string.
type Citation struct {
	Seq int    `yaml:"seq" json:"seq"`
	Raw string `yaml:"raw" json:"raw"`
}

// SubmissionFile is the stored file behind a galley.
type SubmissionFile struct {
	// Path is relative to the files directory.
	Path  string    `yaml:"path" json:"path"`
	Names Localized `yaml:"names,omitempty" json:"names,omitempty"`
}

// Name returns the first non-empty file name, preferring locale.
func (f *SubmissionFile) Name(locale string) string {
	if f == nil {
		return ""
	}
	return f.Names.First(locale)
}

// Galley is a published representation of an article (e.g. the PDF).
type Galley struct {
	ID    int64           `yaml:"id" json:"id"`
	Label string          `yaml:"label" json:"label"`
	File  *SubmissionFile `yaml:"file,omitempty" json:"file,omitempty"`
}
