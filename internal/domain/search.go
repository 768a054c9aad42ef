package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases s and strips diacritics (NFKD, combining marks removed),
// so that "Città" and "citta" compare equal.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// SearchDocument joins the non-empty parts into one normalised search text
func SearchDocument(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return Normalize(strings.Join(kept, " "))
}

// MatchesQuery reports whether every whitespace token of query occurs as a substring of document.
// An empty query matches everything.
func MatchesQuery(document, query string) bool {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return true
	}

	doc := Normalize(document)
	for _, tok := range tokens {
		if !strings.Contains(doc, Normalize(tok)) {
			return false
		}
	}
	return true
}
