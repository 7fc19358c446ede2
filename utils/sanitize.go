package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// translit covers letters that have no combining-mark decomposition and
// would otherwise fall through to the placeholder.
var translit = map[rune]string{
	'ı': "i", 'İ': "I",
	'ß': "ss",
	'æ': "ae", 'Æ': "AE",
	'ø': "o", 'Ø': "O",
	'đ': "d", 'Đ': "D",
	'ł': "l", 'Ł': "L",
	'œ': "oe", 'Œ': "OE",
	'þ': "th", 'Þ': "Th",
	'–': "-", '—': "-",
	'‘': "'", '’': "'",
	'“': `"`, '”': `"`,
	'…': "...",
}

// Transliterate folds free text down to plain ASCII: diacritics are
// stripped ("Şirket Ö." becomes "Sirket O."), known specials are spelled
// out, anything left over becomes '?'. The PDF export relies on this
// never failing, whatever the input.
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue // combining mark left over from decomposition
		}
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		if repl, ok := translit[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
