// Package country resolves ISO 3166-1 alpha-2 codes to country names.
package country

import (
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

//go:embed countries.yaml
var embeddedNames []byte

// Resolver names a country in a language ("en", "ru").
type Resolver interface {
	Name(alpha2, lang string) (string, bool)
}

// Table prefers the embedded official names and falls back to CLDR region
// names. The zero value is ready to use and safe for concurrent readers.
type Table struct {
	once     sync.Once
	official map[string]map[string]string
}

// NewTable returns a Table backed by the embedded official names.
func NewTable() *Table {
	return &Table{}
}

func (t *Table) load() {
	t.once.Do(func() {
		official, err := parseNames(embeddedNames)
		if err != nil {
			slog.Warn("Falling back to CLDR country names", "err", err)
			official = map[string]map[string]string{}
		}
		t.official = official
	})
}

func parseNames(data []byte) (map[string]map[string]string, error) {
	raw := map[string]map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing country names: %w", err)
	}
	names := make(map[string]map[string]string, len(raw))
	for code, byLang := range raw {
		names[strings.ToUpper(code)] = byLang
	}
	return names, nil
}

// Name returns the country's name in lang. Only the language part of lang is
// used, so "ru_RU" and "ru" are equivalent.
func (t *Table) Name(alpha2, lang string) (string, bool) {
	t.load()
	code := strings.ToUpper(strings.TrimSpace(alpha2))
	if len(code) != 2 {
		return "", false
	}
	lang = languagePart(lang)

	if name := t.official[code][lang]; name != "" {
		return name, true
	}

	region, err := language.ParseRegion(code)
	if err != nil || !region.IsCountry() {
		return "", false
	}
	for _, tag := range []language.Tag{language.Make(lang), language.English} {
		if namer := display.Regions(tag); namer != nil {
			if name := namer.Name(region); name != "" {
				return name, true
			}
		}
	}
	return "", false
}

func languagePart(lang string) string {
	lang = strings.ToLower(lang)
	if i := strings.IndexAny(lang, "_-"); i >= 0 {
		lang = lang[:i]
	}
	return lang
}
