package registry

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveDiacritics removes diacritical marks from a string (e.g., "Jiří" -> "Jiri").
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// NormalizeName normalizes a student name for comparison (lowercase, no
// diacritics, spaces for dashes).
func NormalizeName(name string) string {
	name = RemoveDiacritics(name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "-", " ")
	return strings.TrimSpace(name)
}

// Search returns the entries whose name or student ID contains the query,
// compared diacritic-insensitively. An empty query returns all entries.
func (ks *KnownSet) Search(query string) []Entry {
	q := NormalizeName(query)
	if q == "" {
		return ks.entries
	}

	var matched []Entry
	for _, e := range ks.entries {
		if strings.Contains(NormalizeName(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Record.StudentID), q) {
			matched = append(matched, e)
		}
	}
	return matched
}
