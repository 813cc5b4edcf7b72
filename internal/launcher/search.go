package launcher

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Search filters the catalog for the command palette. An empty query
// returns everything. Otherwise entries whose title contains the query, or
// that have a keyword containing it, come first in catalog order; with
// fuzzyMatching set, fuzzy matches over title and keywords follow, best
// score first.
func Search(c Catalog, query string, fuzzyMatching bool) Catalog {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append(Catalog(nil), c...)
	}

	var out Catalog
	var rest Catalog
	for _, e := range c {
		if substringMatch(e, q) {
			out = append(out, e)
		} else {
			rest = append(rest, e)
		}
	}

	if fuzzyMatching && len(rest) > 0 {
		for _, m := range fuzzy.FindFrom(q, searchSource(rest)) {
			out = append(out, rest[m.Index])
		}
	}
	return out
}

func substringMatch(e Entry, q string) bool {
	if strings.Contains(strings.ToLower(e.Title), q) {
		return true
	}
	for _, k := range e.Keywords {
		if strings.Contains(strings.ToLower(k), q) {
			return true
		}
	}
	return false
}

type searchSource Catalog

func (s searchSource) String(i int) string {
	e := s[i]
	return strings.ToLower(e.Title + " " + strings.Join(e.Keywords, " "))
}

func (s searchSource) Len() int {
	return len(s)
}
