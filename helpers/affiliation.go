package helpers

import (
	"strings"
)

// Affiliation is a free-text affiliation split into an organization and an
// address.
type Affiliation struct {
	Organization string
	Address      string
}

// ParseAffiliation splits a semicolon separated list of affiliations.
//
// Within each fragment the text before the second-to-last comma is the
// organization and the rest is the address, so "Dept X, City, Country"
// yields "Dept X" and "City, Country". Fragments with fewer than two commas
// are all organization. Organizations are joined with "; ", addresses too,
// but each distinct address appears only once.
//
// The heuristic misparses organizations that themselves contain commas.
func ParseAffiliation(s string) Affiliation {
	var (
		organizations []string
		addresses     []string
		seen          = make(map[string]struct{})
	)

	for _, fragment := range strings.Split(s, ";") {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}

		organization, address := splitAffiliation(fragment)
		organizations = append(organizations, organization)

		if address == "" {
			continue
		}
		if _, ok := seen[address]; ok {
			continue
		}
		seen[address] = struct{}{}
		addresses = append(addresses, address)
	}

	return Affiliation{
		Organization: strings.Join(organizations, "; "),
		Address:      strings.Join(addresses, "; "),
	}
}

func splitAffiliation(fragment string) (organization, address string) {
	last := strings.LastIndex(fragment, ",")
	if last < 0 {
		return fragment, ""
	}
	secondLast := strings.LastIndex(fragment[:last], ",")
	if secondLast < 0 {
		return fragment, ""
	}
	organization = strings.TrimSpace(fragment[:secondLast])
	address = strings.TrimLeft(fragment[secondLast:], ", ")
	return organization, address
}
