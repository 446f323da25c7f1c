package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hightemp/countrypicker/internal/batch"
	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [code]",
	Short: "Look up a country by its ISO 3166-1 alpha-2 code",
	Long: `Looks up a country by code and prints its flag, calling codes and
localized name.

For a single code:
  countrypicker lookup DE

For batch processing (read from stdin):
  cat codes.txt | countrypicker lookup --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	dir, err := loadDirectory()
	if err != nil {
		return err
	}
	processor := batch.NewProcessor(dir, newResolver(), langFlag)

	// Check if we have a code argument or should read from stdin
	if len(args) == 1 {
		return lookupSingle(cmd.OutOrStdout(), processor, args[0])
	}

	if !isBatchMode() {
		// stdin is a terminal, show help
		return cmd.Help()
	}

	return processor.ProcessInput(ctx, os.Stdin, cmd.OutOrStdout(), jsonOutput)
}

func lookupSingle(out io.Writer, processor *batch.Processor, code string) error {
	if !countries.ValidCode(code) {
		return exitWithCode(ExitInvalidInput, fmt.Sprintf("Invalid country code: %q (want two letters)", code))
	}

	result := processor.Lookup(code)
	if result.Error != "" {
		return exitWithCode(ExitNotFound, fmt.Sprintf("Country %s not found", result.Code))
	}

	if jsonOutput {
		jsonStr, err := result.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, jsonStr)
	} else {
		fmt.Fprintln(out, result.FormatText())
	}
	return nil
}

// isBatchMode checks if we're receiving batch input
func isBatchMode() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
