// Package knowledge holds the restaurant knowledge base: the flattened menu
// index, the FAQ matcher and the text matching primitives they share.
package knowledge

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerCaser = cases.Lower(language.Und)

// Lower lower-cases s the same way Normalize does, without stripping anything.
func Lower(s string) string {
	return lowerCaser.String(s)
}

// Normalize canonicalizes s for comparison: lower case, "&" spelled "and",
// curly apostrophes straightened, everything outside [a-z0-9 '] dropped and
// whitespace collapsed to single spaces with no leading or trailing space.
func Normalize(s string) string {
	s = lowerCaser.String(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false

	emit := func(str string) {
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteString(str)
	}

	for _, r := range s {
		switch {
		case r == '&':
			emit("and")
		case r == '\'' || r == '‘' || r == '’':
			emit("'")
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			emit(string(r))
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}

	return b.String()
}
