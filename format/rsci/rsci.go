// Package rsci provides a format plugin for RSCI journal issue XML, the
// upload format of the Russian Science Citation Index.
package rsci

import (
	"errors"

	"github.com/lehigh-university-libraries/rsciexport/format"
)

var (
	// ErrNotExportable is returned for an issue without published articles.
	ErrNotExportable = errors.New("issue has no published articles")

	// ErrEmptyPageRange is returned when a page range is requested for no
	// articles.
	ErrEmptyPageRange = errors.New("page range of an empty article list")
)

// Format implements one RSCI output schema.
type Format struct {
	Schema Schema
}

// Ensure Format implements the interfaces
var (
	_ format.Format     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return f.Schema.Name
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return f.Schema.Description
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"xml"}
}

func init() {
	for _, schema := range Schemas() {
		format.Register(&Format{Schema: schema})
	}
}
