// Package batch handles batch code lookups from a stream.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/output"
)

// Processor resolves country codes read one per line.
type Processor struct {
	dir   *countries.Directory
	names countries.Resolver
	lang  string
}

// NewProcessor creates a new batch processor resolving names in lang.
func NewProcessor(dir *countries.Directory, names countries.Resolver, lang string) *Processor {
	return &Processor{
		dir:   dir,
		names: names,
		lang:  lang,
	}
}

// ProcessInput reads codes from r and writes results to w. Blank lines and
// lines starting with '#' are skipped. Codes are matched case-insensitively.
func (p *Processor) ProcessInput(ctx context.Context, r io.Reader, w io.Writer, jsonOutput bool) error {
	scanner := bufio.NewScanner(r)
	var results []*output.LookupResult

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result := p.Lookup(line)
		if jsonOutput {
			// Collect all results for JSON array output
			results = append(results, result)
			continue
		}
		fmt.Fprintln(w, result.FormatText())
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	if jsonOutput {
		if results == nil {
			results = []*output.LookupResult{}
		}
		batch := &output.BatchResult{Results: results}
		jsonStr, err := batch.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, jsonStr)
	}
	return nil
}

// Lookup resolves a single code.
func (p *Processor) Lookup(code string) *output.LookupResult {
	code = strings.ToUpper(strings.TrimSpace(code))
	result := &output.LookupResult{Code: code}

	rec, ok := p.dir.Lookup(code)
	if !ok {
		result.Error = "not found"
		return result
	}

	result.Name = p.names.Name(rec, p.lang)
	result.CallingCodes = rec.CallingCodes
	result.Flag = rec.Flag()
	return result
}
