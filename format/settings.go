package format

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings is returned when a serializer is called with missing or
// malformed settings.
var ErrInvalidSettings = errors.New("invalid export settings")

// ExportSettings are a journal's RSCI export options. They are read once per
// run and never modified by serializers.
type ExportSettings struct {
	// ArtTypeFromSectionAbbrev uses the section abbreviation as article
	// type when it is a valid RSCI type
	ArtTypeFromSectionAbbrev bool

	// ExportSections emits a section node before each run of articles
	// from the same section
	ExportSections bool

	// JournalTitleID is the journal's RSCI title identifier
	JournalTitleID string

	// DocStartKey and DocEndKey delimit the full-text excerpt
	DocStartKey string
	DocEndKey   string

	// LangCitation stops the reference list at a "###" citation
	LangCitation bool

	// NamesAsIs writes given names unchanged instead of initials
	NamesAsIs bool
}

// Validate reports settings that cannot produce a valid document.
func (s *ExportSettings) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: settings are nil", ErrInvalidSettings)
	}
	return nil
}
