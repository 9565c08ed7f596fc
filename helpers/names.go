package helpers

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Initials renders the initials of a given name: "Ivan Petrovich" becomes
// "I. P.". Tokens that do not start with an upper-case letter are skipped.
func Initials(given string) string {
	var initials []string
	for _, token := range strings.Fields(given) {
		r, _ := utf8.DecodeRuneInString(token)
		if !unicode.IsUpper(r) {
			continue
		}
		initials = append(initials, string(r)+".")
	}
	return strings.Join(initials, " ")
}

// ORCIDCode returns the identifier part of an ORCID, accepting both bare
// identifiers and URLs such as "https://orcid.org/0000-0002-1825-0097".
func ORCIDCode(orcid string) string {
	orcid = strings.TrimRight(strings.TrimSpace(orcid), "/")
	if i := strings.LastIndex(orcid, "/"); i >= 0 {
		return orcid[i+1:]
	}
	return orcid
}
