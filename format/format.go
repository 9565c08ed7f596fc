// Package format defines the interface for RSCI output schema plugins.
package format

import (
	"io"

	"github.com/lehigh-university-libraries/rsciexport/country"
	"github.com/lehigh-university-libraries/rsciexport/fulltext"
	"github.com/lehigh-university-libraries/rsciexport/lang"
	"github.com/lehigh-university-libraries/rsciexport/notify"
	"github.com/lehigh-university-libraries/rsciexport/source"
)

// Format defines the interface that all output schemas must implement.
type Format interface {
	// Name returns the schema identifier (e.g., "rsci", "rsci-legacy")
	Name() string

	// Description returns a human-readable schema description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string
}

// Serializer is a format that can write a resolved issue to output.
type Serializer interface {
	Format

	// Serialize writes the issue in bundle to w.
	Serialize(w io.Writer, bundle *source.Bundle, opts *SerializeOptions) error
}

// SerializeOptions contains the per-run configuration and collaborators of
// a serializer.
type SerializeOptions struct {
	// Settings are the journal's export settings. Required.
	Settings *ExportSettings

	// Warnings receives recoverable problems found while serializing
	Warnings notify.Sink

	// Extractor reads full-text galley files
	Extractor fulltext.Extractor

	// Countries names author countries
	Countries country.Resolver

	// Languages maps ISO 639 codes
	Languages *lang.Table

	// Linker builds public article URLs
	Linker Linker

	// Compact disables indentation. Output is indented by default.
	Compact bool
}

// NewSerializeOptions creates SerializeOptions with defaults. Lookup tables
// are created fresh; share them across runs by assigning the same values.
func NewSerializeOptions(settings *ExportSettings) *SerializeOptions {
	return &SerializeOptions{
		Settings:  settings,
		Warnings:  notify.Discard,
		Extractor: fulltext.PDFExtractor{},
		Countries: country.NewTable(),
		Languages: lang.NewTable(),
		Linker:    PathLinker{},
	}
}

// WithDefaults returns a copy of opts with every nil collaborator replaced
// by its default.
func (opts SerializeOptions) WithDefaults() *SerializeOptions {
	defaults := NewSerializeOptions(opts.Settings)
	if opts.Warnings == nil {
		opts.Warnings = defaults.Warnings
	}
	if opts.Extractor == nil {
		opts.Extractor = defaults.Extractor
	}
	if opts.Countries == nil {
		opts.Countries = defaults.Countries
	}
	if opts.Languages == nil {
		opts.Languages = defaults.Languages
	}
	if opts.Linker == nil {
		opts.Linker = defaults.Linker
	}
	return &opts
}
