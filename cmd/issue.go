package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lehigh-university-libraries/rsciexport/config"
	"github.com/lehigh-university-libraries/rsciexport/format"
	"github.com/lehigh-university-libraries/rsciexport/fulltext"
	"github.com/lehigh-university-libraries/rsciexport/notify"
	"github.com/lehigh-university-libraries/rsciexport/source"
)

// issueFlags select an issue and the settings to export it with.
type issueFlags struct {
	source  string
	config  string
	journal int64
	issue   int64
}

func (f *issueFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.source, "source", "s", "", "Journal data: snapshot (.yaml, .json) or SQLite database (.db)")
	flags.StringVar(&f.config, "config", "", "Settings file (default: $XDG_CONFIG_HOME/rsciexport/settings.yaml)")
	flags.Int64Var(&f.journal, "journal", 0, "Journal ID")
	flags.Int64Var(&f.issue, "issue", 0, "Issue ID")
	flags.String("schema", config.DefaultSchema, "Output schema (see \"rsciexport schemas list\")")
	flags.String("files-dir", config.DefaultFilesDir, "Directory galley file paths are relative to")
	flags.String("base-url", "", "Site base URL for article links")
	flags.String("context-path", "", "Journal path in article links (default: the journal's path)")
}

// isDatabase reports whether path names a SQLite database rather than a
// snapshot file.
func isDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// openSource opens the journal data at path. The returned close function
// must be called when the source is no longer needed.
func openSource(path string) (source.Source, func() error, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("--source is required")
	}
	if isDatabase(path) {
		db, err := source.OpenDB(path)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	}
	snap, err := source.LoadSnapshot(path)
	if err != nil {
		return nil, nil, err
	}
	return snap, func() error { return nil }, nil
}

// prepared is everything needed to serialize one issue.
type prepared struct {
	cfg        *config.Config
	serializer format.Serializer
	bundle     *source.Bundle
	warnings   *notify.Collector
	opts       *format.SerializeOptions
}

func prepare(ctx context.Context, cmd *cobra.Command, f *issueFlags) (_ *prepared, err error) {
	if f.journal == 0 || f.issue == 0 {
		return nil, fmt.Errorf("--journal and --issue are required")
	}

	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	cfg, err := config.Load(v, config.ResolvePath(f.config))
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	serializer, err := format.GetSerializer(cfg.Schema)
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q: %w", cfg.Schema, err)
	}

	src, closeSource, err := openSource(f.source)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := closeSource(); cerr != nil && err == nil {
			err = fmt.Errorf("closing source: %w", cerr)
		}
	}()

	bundle, err := source.Load(ctx, src, f.journal, f.issue)
	if err != nil {
		return nil, err
	}

	warnings := notify.NewCollector()
	opts := format.NewSerializeOptions(cfg.Settings())
	opts.Warnings = notify.Multi(notify.LogSink{}, warnings)
	opts.Extractor = fulltext.PDFExtractor{FilesDir: cfg.FilesDir}
	opts.Linker = cfg.Linker()

	return &prepared{
		cfg:        cfg,
		serializer: serializer,
		bundle:     bundle,
		warnings:   warnings,
		opts:       opts,
	}, nil
}
