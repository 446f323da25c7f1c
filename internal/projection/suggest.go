package projection

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/hightemp/countrypicker/internal/textfold"
)

// Suggest returns up to n entries whose names are close to filter, for use
// when Project(filter, tag) comes back empty. Each name is compared on its
// leading runes, as many as filter has, after folding case and diacritics.
// Candidates further than half the filter length are dropped.
func (p *Projector) Suggest(filter, tag string, n int) []Entry {
	needle := fold(filter)
	width := utf8.RuneCountInString(needle)
	if n <= 0 || width == 0 {
		return nil
	}
	maxDistance := max(1, (width+1)/2)

	type scored struct {
		entry    Entry
		distance int
		pos      int
	}

	var candidates []scored
	for i, e := range p.Project("", tag) {
		d := levenshtein.ComputeDistance(needle, prefix(fold(e.Name), width))
		if d > maxDistance {
			continue
		}
		candidates = append(candidates, scored{entry: e, distance: d, pos: i})
	}

	slices.SortFunc(candidates, func(a, b scored) int {
		if c := cmp.Compare(a.distance, b.distance); c != 0 {
			return c
		}
		return cmp.Compare(a.pos, b.pos)
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]Entry, len(candidates))
	for i, c := range candidates {
		out[i] = c.entry
	}
	return out
}

func fold(s string) string {
	return strings.ToLower(textfold.Deburr(s))
}

func prefix(s string, runes int) string {
	i := 0
	for pos := range s {
		if i == runes {
			return s[:pos]
		}
		i++
	}
	return s
}
