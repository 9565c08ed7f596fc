// Package lang translates between journal locales ("en_US") and the
// upper-case ISO 639 three-letter codes RSCI tags elements with ("ENG").
package lang

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Table maps ISO 639-1 codes to ISO 639-3 codes and back. It is filled on
// first use and read-only afterwards, so one Table can serve concurrent
// exports.
type Table struct {
	once     sync.Once
	toAlpha3 map[string]string
	toAlpha2 map[string]string
}

// NewTable returns an empty Table; the mapping is built lazily.
func NewTable() *Table {
	return &Table{}
}

func (t *Table) load() {
	t.once.Do(func() {
		t.toAlpha3 = make(map[string]string)
		t.toAlpha2 = make(map[string]string)

		// Every two-letter code x/text knows is an ISO 639-1 code.
		code := make([]byte, 2)
		for a := byte('a'); a <= 'z'; a++ {
			for b := byte('a'); b <= 'z'; b++ {
				code[0], code[1] = a, b
				alpha2 := string(code)
				base, err := language.ParseBase(alpha2)
				if err != nil {
					continue
				}
				alpha3 := base.ISO3()
				if len(alpha3) != 3 {
					continue
				}
				t.toAlpha3[alpha2] = alpha3
				// Deprecated aliases (iw, in, ji) must not shadow the
				// canonical code on the way back.
				if base.String() == alpha2 {
					t.toAlpha2[alpha3] = alpha2
				}
			}
		}
	})
}

// Alpha3 returns the lower-case ISO 639-3 code for an ISO 639-1 code.
func (t *Table) Alpha3(alpha2 string) (string, bool) {
	t.load()
	alpha3, ok := t.toAlpha3[strings.ToLower(alpha2)]
	return alpha3, ok
}

// Alpha2 returns the ISO 639-1 code for a three-letter code. Codes missing
// from the table are retried through x/text's own alias handling.
func (t *Table) Alpha2(alpha3 string) (string, bool) {
	t.load()
	alpha3 = strings.ToLower(alpha3)
	if alpha2, ok := t.toAlpha2[alpha3]; ok {
		return alpha2, true
	}
	if len(alpha3) != 3 {
		return "", false
	}
	base, err := language.ParseBase(alpha3)
	if err != nil {
		return "", false
	}
	if alpha2 := base.String(); len(alpha2) == 2 {
		return alpha2, true
	}
	return "", false
}

// Len returns the number of known ISO 639-1 codes.
func (t *Table) Len() int {
	t.load()
	return len(t.toAlpha3)
}
