package scraper

import (
	"html"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFKD and drops the combining marks, which removes
// diacritics ("café" -> "cafe").
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

var flattenWhitespace = strings.NewReplacer("\n", " ", "\t", " ")

// Normalize produces the canonical plain-text form used for PDF rendering and
// chunking: lowercase, HTML entities unescaped, diacritics removed, newlines
// and tabs collapsed to single spaces. Pure and idempotent.
func Normalize(input string) string {
	s := strings.ToLower(input)
	s = html.UnescapeString(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	return flattenWhitespace.Replace(s)
}
