package rsci

import "fmt"

// Schema selects which parts of the RSCI document are produced and how.
// The element order is the same for every schema.
type Schema struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// PadAuthorNumbers writes author numbers as "001" instead of "1".
	PadAuthorNumbers bool `yaml:"pad_author_numbers"`

	// ParseAffiliations splits free-text affiliations into orgName and
	// address. Otherwise orgName is the affiliation as entered and address
	// is the name of the author's country.
	ParseAffiliations bool `yaml:"parse_affiliations"`

	// PrimaryCitationLanguage tags references with the primary language
	// instead of "ANY".
	PrimaryCitationLanguage bool `yaml:"primary_citation_language"`

	// CitationSentinel stops the reference list at a "###" citation when
	// the journal enables citation language filtering.
	CitationSentinel bool `yaml:"citation_sentinel"`

	UDK      bool `yaml:"udk"`
	FullText bool `yaml:"full_text"`
	Dates    bool `yaml:"dates"`
	Fundings bool `yaml:"fundings"`

	// GalleyURL links furl to the PDF galley rather than the article page.
	GalleyURL bool `yaml:"galley_url"`
}

// SchemaCurrent is the schema produced for current RSCI uploads.
var SchemaCurrent = Schema{
	Name:             "rsci",
	Description:      "RSCI journal issue XML",
	CitationSentinel: true,
	UDK:              true,
	FullText:         true,
	Dates:            true,
	Fundings:         true,
	GalleyURL:        true,
}

// SchemaLegacy reproduces the earlier upload layout: padded author numbers,
// parsed affiliations and no full text, dates or fundings.
var SchemaLegacy = Schema{
	Name:                    "rsci-legacy",
	Description:             "RSCI journal issue XML (legacy layout)",
	PadAuthorNumbers:        true,
	ParseAffiliations:       true,
	PrimaryCitationLanguage: true,
	CitationSentinel:        true,
}

// Schemas returns every known schema, current first.
func Schemas() []Schema {
	return []Schema{SchemaCurrent, SchemaLegacy}
}

// SchemaByName returns the schema called name.
func SchemaByName(name string) (Schema, error) {
	for _, schema := range Schemas() {
		if schema.Name == name {
			return schema, nil
		}
	}
	return Schema{}, fmt.Errorf("unknown RSCI schema: %s", name)
}
