// Package output handles output formatting.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hightemp/countrypicker/internal/projection"
	"github.com/hightemp/countrypicker/internal/selection"
)

// LookupResult contains the result of a code lookup.
type LookupResult struct {
	Code         string   `json:"code"`
	Name         string   `json:"name,omitempty"`
	CallingCodes []string `json:"calling_codes,omitempty"`
	Flag         string   `json:"flag,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// FormatText formats result as tab-separated text.
func (r *LookupResult) FormatText() string {
	if r.Error != "" {
		return fmt.Sprintf("%s\t-\t-\tERROR: %s", r.Code, r.Error)
	}

	return fmt.Sprintf("%s\t%s\t%s\t%s",
		r.Code,
		r.Flag,
		callingCodesString(r.CallingCodes),
		r.Name,
	)
}

// FormatJSON formats result as JSON.
func (r *LookupResult) FormatJSON() (string, error) {
	return marshal(r)
}

// BatchResult contains results for batch processing.
type BatchResult struct {
	Results []*LookupResult
}

// FormatJSON formats batch results as JSON array.
func (b *BatchResult) FormatJSON() (string, error) {
	return marshal(b.Results)
}

// FormatEntriesText formats a projection, one entry per line, with an
// optional position column.
func FormatEntriesText(entries []projection.Entry, withPosition bool) string {
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		line := fmt.Sprintf("%s\t%s\t%s\t%s", e.Code, e.Flag, callingCodesString(e.CallingCodes), e.Name)
		if withPosition {
			line = fmt.Sprintf("%d\t%s", i, line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// FormatEntriesJSON formats a projection as a JSON array. An empty
// projection is "[]", not "null".
func FormatEntriesJSON(entries []projection.Entry) (string, error) {
	if entries == nil {
		entries = []projection.Entry{}
	}
	return marshal(entries)
}

// FormatEventText formats a selection event as tab-separated text.
func FormatEventText(ev selection.Event) string {
	cc := "-"
	if ev.CallingCode != "" {
		cc = "+" + ev.CallingCode
	}
	name := ev.Name
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf("%s\t%s\t%s", ev.Code, cc, name)
}

// FormatEventJSON formats a selection event as JSON.
func FormatEventJSON(ev selection.Event) (string, error) {
	return marshal(ev)
}

func callingCodesString(codes []string) string {
	if len(codes) == 0 {
		return "-"
	}
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = "+" + c
	}
	return strings.Join(parts, ",")
}

func marshal(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
