package rsci

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/rsciexport/format"
	"github.com/lehigh-university-libraries/rsciexport/source"
)

// Serialize writes the issue in bundle as an RSCI XML document. Nothing is
// written when the document cannot be built.
func (f *Format) Serialize(w io.Writer, bundle *source.Bundle, opts *format.SerializeOptions) error {
	doc, err := Build(f.Schema, bundle, opts)
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(w)
	if !opts.Compact {
		encoder.Indent("", "  ")
	}
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding RSCI XML: %w", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}
