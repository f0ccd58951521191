package common

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticsRemover = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// StripDiacritics removes combining accent marks ("Cartão" -> "Cartao").
func StripDiacritics(s string) string {
	out, _, err := transform.String(diacriticsRemover, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lower-cases and strips diacritics, the shared preprocessing step
// for keyword classification.
func Normalize(s string) string {
	return strings.ToLower(StripDiacritics(s))
}

// CleanDescription canonicalizes a free-text description for similarity
// comparison: trim, collapse whitespace, drop non-alphanumerics, and
// upper-case the first letter.
func CleanDescription(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r) && !lastSpace:
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return out
	}
	r := []rune(out)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Ellipsize caps a string at max runes, replacing the tail with "…" when
// truncated.
func Ellipsize(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max < 1 {
		return ""
	}
	return string(r[:max-1]) + "…"
}
