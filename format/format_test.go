package format

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/rsciexport/notify"
	"github.com/lehigh-university-libraries/rsciexport/source"
)

type stubFormat struct{ name string }

func (f stubFormat) Name() string         { return f.name }
func (f stubFormat) Description() string  { return "stub " + f.name }
func (f stubFormat) Extensions() []string { return []string{"xml"} }

type stubSerializer struct{ stubFormat }

func (stubSerializer) Serialize(io.Writer, *source.Bundle, *SerializeOptions) error { return nil }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(stubSerializer{stubFormat{"beta"}})
	r.Register(stubFormat{"Alpha"})

	assert.Equal(t, []string{"alpha", "beta"}, r.List())

	f, ok := r.Get("ALPHA")
	require.True(t, ok)
	assert.Equal(t, "Alpha", f.Name())

	s, err := r.GetSerializer("beta")
	require.NoError(t, err)
	assert.Equal(t, "beta", s.Name())

	_, err = r.GetSerializer("alpha")
	assert.ErrorContains(t, err, "does not support serialization")

	_, err = r.GetSerializer("gamma")
	assert.ErrorContains(t, err, "unknown format")
}

func TestPathLinker(t *testing.T) {
	journal := &source.Journal{Path: "vestnik"}

	tests := []struct {
		name    string
		linker  PathLinker
		article int64
		galley  int64
		want    string
	}{
		{"with galley", PathLinker{BaseURL: "https://journals.example.org/"}, 501, 701, "https://journals.example.org/index.php/vestnik/article/view/501/701"},
		{"landing page", PathLinker{BaseURL: "https://journals.example.org"}, 501, 0, "https://journals.example.org/index.php/vestnik/article/view/501"},
		{"context override", PathLinker{BaseURL: "https://x.org", ContextPath: "other"}, 1, 2, "https://x.org/index.php/other/article/view/1/2"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.linker.ArticleURL(journal, tc.article, tc.galley))
		})
	}

	assert.Equal(t, "https://x.org/index.php/a%20b/article/view/3",
		PathLinker{BaseURL: "https://x.org"}.ArticleURL(&source.Journal{Path: "a b"}, 3, 0))
}

func TestExportSettingsValidate(t *testing.T) {
	var nilSettings *ExportSettings
	assert.True(t, errors.Is(nilSettings.Validate(), ErrInvalidSettings))

	assert.NoError(t, (&ExportSettings{}).Validate(), "an empty title id is written as an empty element")
	assert.NoError(t, (&ExportSettings{JournalTitleID: "12345"}).Validate())
}

func TestWithDefaults(t *testing.T) {
	settings := &ExportSettings{JournalTitleID: "1"}
	collector := notify.NewCollector()

	opts := SerializeOptions{Settings: settings, Warnings: collector}.WithDefaults()
	assert.Same(t, settings, opts.Settings)
	assert.Equal(t, collector, opts.Warnings)
	assert.NotNil(t, opts.Extractor)
	assert.NotNil(t, opts.Countries)
	assert.NotNil(t, opts.Languages)
	assert.NotNil(t, opts.Linker)
	assert.False(t, opts.Compact, "output is indented unless asked otherwise")
	assert.False(t, NewSerializeOptions(settings).Compact)
}
