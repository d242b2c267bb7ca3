package aliases

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize returns the comparison form of a key spelling: whitespace, '-'
// and '_' are dropped and every remaining code point is lowercased on its
// own with language-neutral Unicode rules. Normalize is idempotent.
//
//	Normalize("dir-overrides-404") == "diroverrides404"
//	Normalize("DIR_OVERRIDES_404") == "diroverrides404"
func Normalize(key string) string {
	// A Caser is stateful, so each call gets its own.
	caser := cases.Lower(language.Und)

	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			continue
		}
		// One code point at a time: no context rules such as final sigma.
		b.WriteString(caser.String(string(r)))
	}
	return b.String()
}
