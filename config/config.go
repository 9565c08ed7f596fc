// Package config reads the export settings from a YAML file, RSCI_*
// environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lehigh-university-libraries/rsciexport/format"
)

const (
	AppName   = "rsciexport"
	EnvPrefix = "RSCI"

	DefaultSchema   = "rsci"
	DefaultFilesDir = "."
)

// Setting keys.
const (
	KeyArtTypeFromSectionAbbrev = "export_art_type_from_section_abbrev"
	KeyExportSections           = "export_sections"
	KeyJournalTitleID           = "journal_rsci_title_id"
	KeyDocStartKey              = "doc_start_key"
	KeyDocEndKey                = "doc_end_key"
	KeyLangCitation             = "lang_citation"
	KeyNamesAsIs                = "names_as_is"
	KeySchema                   = "schema"
	KeyFilesDir                 = "files_dir"
	KeyBaseURL                  = "base_url"
	KeyContextPath              = "context_path"
)

// ErrMissingSetting is returned when a required key has no value.
var ErrMissingSetting = errors.New("missing required setting")

var requiredKeys = []string{
	KeyArtTypeFromSectionAbbrev,
	KeyExportSections,
	KeyJournalTitleID,
	KeyDocStartKey,
	KeyDocEndKey,
	KeyLangCitation,
	KeyNamesAsIs,
}

// Config holds the plugin settings of one journal plus the locations the
// command line tools need.
type Config struct {
	ArtTypeFromSectionAbbrev bool
	ExportSections           bool
	JournalTitleID           string
	DocStartKey              string
	DocEndKey                string
	LangCitation             bool
	NamesAsIs                bool

	Schema      string
	FilesDir    string
	BaseURL     string
	ContextPath string
}

// DefaultPath returns the settings file location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "settings.yaml")
}

// ResolvePath returns path when set, otherwise DefaultPath if that file
// exists, otherwise "".
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	if _, err := os.Stat(DefaultPath()); err == nil {
		return DefaultPath()
	}
	return ""
}

// New returns a viper instance reading RSCI_* environment variables.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeySchema, DefaultSchema)
	v.SetDefault(KeyFilesDir, DefaultFilesDir)
	v.SetDefault(KeyBaseURL, "")
	v.SetDefault(KeyContextPath, "")
	return v
}

// BindFlags binds the optional settings to command line flags named after
// the keys with dashes ("files-dir").
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{KeySchema, KeyFilesDir, KeyBaseURL, KeyContextPath} {
		flag := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag.Name, err)
		}
	}
	return nil
}

// Load reads the settings file at path (skipped when path is empty) into v
// and returns the resulting configuration. Every required key must be set
// by the file or the environment.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = New()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings %s: %w", path, err)
		}
	}

	var missing []string
	for _, key := range requiredKeys {
		if !v.IsSet(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingSetting, strings.Join(missing, ", "))
	}

	return &Config{
		ArtTypeFromSectionAbbrev: v.GetBool(KeyArtTypeFromSectionAbbrev),
		ExportSections:           v.GetBool(KeyExportSections),
		JournalTitleID:           strings.TrimSpace(v.GetString(KeyJournalTitleID)),
		DocStartKey:              v.GetString(KeyDocStartKey),
		DocEndKey:                v.GetString(KeyDocEndKey),
		LangCitation:             v.GetBool(KeyLangCitation),
		NamesAsIs:                v.GetBool(KeyNamesAsIs),
		Schema:                   v.GetString(KeySchema),
		FilesDir:                 v.GetString(KeyFilesDir),
		BaseURL:                  v.GetString(KeyBaseURL),
		ContextPath:              v.GetString(KeyContextPath),
	}, nil
}

// Settings returns the options the document builder reads.
func (c *Config) Settings() *format.ExportSettings {
	return &format.ExportSettings{
		ArtTypeFromSectionAbbrev: c.ArtTypeFromSectionAbbrev,
		ExportSections:           c.ExportSections,
		JournalTitleID:           c.JournalTitleID,
		DocStartKey:              c.DocStartKey,
		DocEndKey:                c.DocEndKey,
		LangCitation:             c.LangCitation,
		NamesAsIs:                c.NamesAsIs,
	}
}

// Linker returns the URL builder for article links.
func (c *Config) Linker() format.PathLinker {
	return format.PathLinker{BaseURL: c.BaseURL, ContextPath: c.ContextPath}
}
