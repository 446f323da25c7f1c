package cli

import (
	"fmt"
	"strings"

	"github.com/hightemp/countrypicker/internal/config"
	"github.com/hightemp/countrypicker/internal/output"
	"github.com/hightemp/countrypicker/internal/projection"
	"github.com/spf13/cobra"
)

var (
	suggestCount  int
	withPositions bool
)

var listCmd = &cobra.Command{
	Use:   "list [filter]",
	Short: "List countries whose localized name contains filter",
	Long: `Lists the directory sorted by localized name. With a filter, only
countries whose name contains it (case-insensitive) are shown.

Examples:
  countrypicker list
  countrypicker list many
  countrypicker list --lang deu reich`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVar(&suggestCount, "suggest", config.DefaultSuggestions, "near matches to offer when nothing matches (0 disables)")
	listCmd.Flags().BoolVar(&withPositions, "positions", false, "prefix each row with its position")
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	var filter string
	if len(args) == 1 {
		filter = args[0]
	}

	dir, err := loadDirectory()
	if err != nil {
		return err
	}
	p := newProjector(dir)
	entries := p.Project(filter, langFlag)

	if jsonOutput {
		jsonStr, err := output.FormatEntriesJSON(entries)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, jsonStr)
	} else if len(entries) > 0 {
		fmt.Fprintln(out, output.FormatEntriesText(entries, withPositions))
	}

	if len(entries) == 0 && filter != "" {
		return exitWithCode(ExitNotFound, noMatchMessage(filter, p.Suggest(filter, langFlag, suggestCount)))
	}
	return nil
}

func noMatchMessage(filter string, suggestions []projection.Entry) string {
	msg := fmt.Sprintf("No country matches %q", filter)
	if len(suggestions) == 0 {
		return msg
	}
	names := make([]string, len(suggestions))
	for i, e := range suggestions {
		names[i] = e.Name
	}
	return msg + ". Did you mean: " + strings.Join(names, ", ") + "?"
}
