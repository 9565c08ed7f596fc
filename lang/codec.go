package lang

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/rsciexport/notify"
)

// Codec converts locales for a single export run. Lookups that fail fall
// back to a default and report a warning once per distinct input.
//
// A Codec is not safe for concurrent use; create one per run.
type Codec struct {
	table     *Table
	supported []string
	primary   string
	sink      notify.Sink
	warned    map[string]struct{}
}

// NewCodec creates a codec over a journal's supported locales. A nil table
// gets a private one and a nil sink discards warnings.
func NewCodec(table *Table, supported []string, primary string, sink notify.Sink) *Codec {
	if table == nil {
		table = NewTable()
	}
	if sink == nil {
		sink = notify.Discard
	}
	return &Codec{
		table:     table,
		supported: supported,
		primary:   primary,
		sink:      sink,
		warned:    make(map[string]struct{}),
	}
}

// Primary returns the journal's primary locale.
func (c *Codec) Primary() string {
	return c.primary
}

// ToISO639 returns the upper-case three-letter code for a locale, or "" when
// the language is unknown.
func (c *Codec) ToISO639(locale string) string {
	alpha3, ok := c.table.Alpha3(prefix(locale))
	if !ok {
		c.warn(notify.CodeLocaleToISO, locale,
			fmt.Sprintf("cannot convert locale %q to an ISO 639 language; an empty language will be used", locale))
		return ""
	}
	return strings.ToUpper(alpha3)
}

// FromISO639 returns the first supported locale whose language matches code,
// or the primary locale when none does.
func (c *Codec) FromISO639(code string) string {
	alpha2, ok := c.table.Alpha2(code)
	if ok {
		for _, locale := range c.supported {
			if prefix(locale) == alpha2 {
				return locale
			}
		}
	}
	c.warn(notify.CodeISOToLocale, code,
		fmt.Sprintf("cannot convert ISO 639 language %q to a journal locale; the primary locale will be used", code))
	return c.primary
}

// Languages returns the ISO 639 codes of the supported locales, in order.
func (c *Codec) Languages() []string {
	langs := make([]string, 0, len(c.supported))
	for _, locale := range c.supported {
		langs = append(langs, c.ToISO639(locale))
	}
	return langs
}

func (c *Codec) warn(code, subject, message string) {
	key := code + "\x00" + subject
	if _, ok := c.warned[key]; ok {
		return
	}
	c.warned[key] = struct{}{}
	c.sink.Warn(notify.Warning{Code: code, Subject: subject, Message: message})
}

// prefix returns the lower-case language part of a locale ("en" for "en_US").
func prefix(locale string) string {
	if len(locale) > 2 {
		locale = locale[:2]
	}
	return strings.ToLower(locale)
}
