package classifier

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize prepares merchant text for matching: fixes stray Windows-1252
// bytes, applies NFKC and case folding, strips accents ("café" -> "cafe"),
// drops apostrophes, turns every other non letter/digit into a space and
// collapses whitespace.
func Normalize(text string) string {
	text = fixEncoding(text)
	text = norm.NFKC.String(text)
	text = cases.Fold().String(text) // Caser is stateful, one per call
	if stripped, _, err := transform.String(stripMarks(), text); err == nil {
		text = stripped
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\'' || r == '’' || r == '`':
			// "joe's" -> "joes"
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// TextOf turns an arbitrary decoded value into merchant text. Anything that is
// not a string (nil, numbers, objects) is treated as empty.
func TextOf(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case *string:
		if s != nil {
			return *s
		}
	}
	return ""
}

func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Проверим, является ли строка валидной UTF-8; иначе считаем её Windows-1252.
func fixEncoding(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	fixed, err := charmap.Windows1252.NewDecoder().String(s)
	if err == nil && utf8.ValidString(fixed) {
		return fixed
	}
	return strings.ToValidUTF8(s, "")
}
