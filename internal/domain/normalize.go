package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the diacritic-stripped, lower-cased projection of text
// used for sorting and substring search. "Çafé" becomes "cafe".
func Normalize(text string) string {
	// transform.Chain keeps state, so a fresh chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		out = text
	}
	return strings.ToLower(out)
}

// CleanName trims surrounding whitespace from a display name.
func CleanName(name string) string {
	return strings.TrimSpace(name)
}
