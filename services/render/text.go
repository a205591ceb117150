package render

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// printable maps s onto the Windows-1252 repertoire of the core PDF fonts, so both encoders
// print the same characters. A rune outside it becomes its compatibility decomposition without
// combining marks when that fits, or '?' otherwise.
func printable(s string) string {
	if strings.IndexFunc(s, func(r rune) bool { return !encodable(r) }) < 0 {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if encodable(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteString(fallback(r))
	}
	return b.String()
}

func encodable(r rune) bool {
	switch {
	case r < 0x80:
		return true
	case r <= 0x9F:
		return false
	}
	_, ok := charmap.Windows1252.EncodeRune(r)
	return ok
}

func fallback(r rune) string {
	var b strings.Builder
	for _, d := range norm.NFKD.String(string(r)) {
		if unicode.Is(unicode.Mn, d) {
			continue
		}
		if d == r || !encodable(d) {
			return "?"
		}
		b.WriteRune(d)
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}
