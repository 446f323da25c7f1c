// Package textfold strips diacritics so that names sort and index by their
// base Latin letters ("Åland" folds to "Aland").
package textfold

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ligatures covers letters that carry no combining mark under NFD and
// therefore survive mark removal.
var ligatures = map[rune]string{
	'Æ': "Ae", 'æ': "ae",
	'Ø': "O", 'ø': "o",
	'Œ': "Oe", 'œ': "oe",
	'Ð': "D", 'ð': "d",
	'Đ': "D", 'đ': "d",
	'Þ': "Th", 'þ': "th",
	'Ł': "L", 'ł': "l",
	'Ħ': "H", 'ħ': "h",
	'ß': "ss",
	'ı': "i",
}

// Deburr removes combining marks and expands the few letters that are not
// decomposable. Text outside Latin scripts passes through unchanged apart
// from mark removal.
func Deburr(s string) string {
	if isASCII(s) {
		return s
	}

	// transform.Chain keeps state, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}

	if !strings.ContainsFunc(out, hasLigature) {
		return out
	}
	var b strings.Builder
	b.Grow(len(out) + 4)
	for _, r := range out {
		if rep, ok := ligatures[r]; ok {
			b.WriteString(rep)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Initial returns the upper-cased first letter of s after folding, or
// utf8.RuneError when s is empty.
func Initial(s string) rune {
	folded := Deburr(s)
	r, size := utf8.DecodeRuneInString(folded)
	if size == 0 {
		return utf8.RuneError
	}
	return unicode.ToUpper(r)
}

func hasLigature(r rune) bool {
	_, ok := ligatures[r]
	return ok
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
