package render

import (
	"strings"
	"unicode"
)

var dashes = strings.NewReplacer("...", "…", "---", "—", "--", "–")

// smarten applies typographic punctuation to s. prev is the rune written
// before s and decides whether a leading quote opens or closes.
func smarten(s string, prev rune) string {
	s = dashes.Replace(s)
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			if opensQuote(prev) {
				b.WriteRune('“')
			} else {
				b.WriteRune('”')
			}
		case '\'':
			if opensQuote(prev) {
				b.WriteRune('‘')
			} else {
				b.WriteRune('’')
			}
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}

func opensQuote(prev rune) bool {
	return prev == 0 || unicode.IsSpace(prev) || strings.ContainsRune("([{–—", prev)
}
