package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hightemp/countrypicker/internal/jumpindex"
	"github.com/spf13/cobra"
)

var (
	indexFilter    string
	rowHeight      float64
	listPadding    float64
	viewportHeight float64
)

var indexCmd = &cobra.Command{
	Use:   "index [letter]",
	Short: "Show where each letter starts in the sorted list",
	Long: `Prints the position of the first country whose localized name starts
with letter. Without a letter, prints every letter A-Z with its position,
or "-" when no country starts with it.

With --row-height, the scroll offset for a list of that row height is
printed too.

Examples:
  countrypicker index G
  countrypicker index --filter an
  countrypicker index S --row-height 50 --padding 10 --viewport 400`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexFilter, "filter", "", "only index countries whose name contains this text")
	indexCmd.Flags().Float64Var(&rowHeight, "row-height", 0, "list row height for offset output")
	indexCmd.Flags().Float64Var(&listPadding, "padding", 0, "list padding above and below the rows")
	indexCmd.Flags().Float64Var(&viewportHeight, "viewport", 0, "visible list height")
}

type indexRow struct {
	Letter   string   `json:"letter"`
	Position int      `json:"position"`
	Offset   *float64 `json:"offset,omitempty"`
}

func runIndex(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	dir, err := loadDirectory()
	if err != nil {
		return err
	}
	entries := newProjector(dir).Project(indexFilter, langFlag)
	layout := jumpindex.Layout{RowHeight: rowHeight, Padding: listPadding, ViewportHeight: viewportHeight}

	row := func(letter string, pos int) indexRow {
		r := indexRow{Letter: letter, Position: pos}
		if rowHeight > 0 && pos >= 0 {
			offset := layout.Offset(pos, len(entries))
			r.Offset = &offset
		}
		return r
	}

	var rows []indexRow
	if len(args) == 1 {
		letter := strings.ToUpper(args[0])
		if !jumpindex.ValidLetter(letter) {
			return exitWithCode(ExitInvalidInput, fmt.Sprintf("Invalid letter: %q", args[0]))
		}
		pos, ok := jumpindex.IndexOf(entries, letter)
		if !ok {
			return exitWithCode(ExitNotFound, fmt.Sprintf("No country starts with %s", letter))
		}
		rows = append(rows, row(letter, pos))
	} else {
		positions := jumpindex.Positions(entries)
		for _, letter := range jumpindex.Letters() {
			rows = append(rows, row(letter, positions[letter]))
		}
	}

	if jsonOutput {
		var v any = rows
		if len(args) == 1 {
			v = rows[0]
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	for _, r := range rows {
		fmt.Fprintln(out, formatIndexRow(r))
	}
	return nil
}

func formatIndexRow(r indexRow) string {
	pos := "-"
	if r.Position >= 0 {
		pos = fmt.Sprint(r.Position)
	}
	line := r.Letter + "\t" + pos
	if r.Offset != nil {
		line += "\t" + fmt.Sprintf("%g", *r.Offset)
	}
	return line
}
