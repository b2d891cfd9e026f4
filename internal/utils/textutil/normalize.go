package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics removes combining marks from s ("Caja Chica Ñandú" ->
// "Caja Chica Nandu"), preserving the original casing.
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeKey produces the canonical lowercase lookup key for an account
// name: diacritics stripped, lowercased, surrounding whitespace trimmed.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(StripDiacritics(s)))
}
