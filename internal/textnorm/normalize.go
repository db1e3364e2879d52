// Package textnorm holds the key normalization used for case-insensitive
// location matching.
package textnorm

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Lower lower-cases s using Unicode rules.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// FoldAccents lower-cases s and strips combining marks (Élodie -> elodie).
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, Lower(s))
	if err != nil {
		return Lower(s)
	}
	return out
}
