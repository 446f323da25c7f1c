// Package jumpindex maps alphabet letters to positions in a projection so a
// list can jump straight to the first country starting with a letter.
package jumpindex

import (
	"unicode/utf8"

	"github.com/hightemp/countrypicker/internal/projection"
	"github.com/hightemp/countrypicker/internal/textfold"
)

// Letters returns a fresh A-Z slice. The jump index is fixed and does not
// depend on the data.
func Letters() []string {
	letters := make([]string, 0, 26)
	for r := 'A'; r <= 'Z'; r++ {
		letters = append(letters, string(r))
	}
	return letters
}

// IndexOf returns the position of the first entry whose folded name starts
// with letter, compared case-insensitively after folding letter too. It
// reports false for an empty or multi-character letter or when no entry
// starts with it; the caller should then leave the scroll position alone.
func IndexOf(entries []projection.Entry, letter string) (int, bool) {
	want, ok := normalizeLetter(letter)
	if !ok {
		return 0, false
	}
	for i, e := range entries {
		if textfold.Initial(e.Name) == want {
			return i, true
		}
	}
	return 0, false
}

// Present returns the letters from Letters that start at least one entry.
func Present(entries []projection.Entry) []string {
	seen := make(map[rune]bool, 26)
	for _, e := range entries {
		seen[textfold.Initial(e.Name)] = true
	}
	var out []string
	for _, l := range Letters() {
		if seen[rune(l[0])] {
			out = append(out, l)
		}
	}
	return out
}

// Positions returns, for every letter in Letters, its IndexOf result or -1.
func Positions(entries []projection.Entry) map[string]int {
	first := make(map[rune]int, 26)
	for i, e := range entries {
		r := textfold.Initial(e.Name)
		if _, ok := first[r]; !ok {
			first[r] = i
		}
	}
	out := make(map[string]int, 26)
	for _, l := range Letters() {
		if pos, ok := first[rune(l[0])]; ok {
			out[l] = pos
		} else {
			out[l] = -1
		}
	}
	return out
}

// ValidLetter reports whether letter is a single character, possibly with
// combining accents.
func ValidLetter(letter string) bool {
	return utf8.RuneCountInString(letter) == 1 ||
		utf8.RuneCountInString(textfold.Deburr(letter)) == 1
}

func normalizeLetter(letter string) (rune, bool) {
	if !ValidLetter(letter) {
		return 0, false
	}
	r := textfold.Initial(letter)
	if r == utf8.RuneError {
		return 0, false
	}
	return r, true
}
