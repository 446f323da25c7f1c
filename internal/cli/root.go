// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hightemp/countrypicker/internal/config"
	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/projection"
	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags
var (
	configPath  string
	datasetPath string
	langFlag    string
	logLevel    string
	jsonOutput  bool
)

// cfg is loaded once per invocation by the root pre-run hook.
var cfg = config.DefaultConfig()

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "countrypicker",
	Short: "Country directory and picker core",
	Long: `countrypicker lists, filters and looks up countries with localized
names, flags and international calling codes, and drives country pickers.

Filter the list:
  countrypicker list many
  countrypicker list --lang fra all

Jump to a letter:
  countrypicker index G

Look up codes in batch (read from stdin):
  cat codes.txt | countrypicker lookup

Serve the HTTP API for remote pickers:
  countrypicker serve --addr :8080`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Msg)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitFailure)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultConfigDir()+"/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "country dataset file (YAML or JSON); bundled data when empty")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "translation tag for names, e.g. fra or deu")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// ExitCode constants
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitNotFound     = 4
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string {
	return e.Msg
}

func exitWithCode(code int, msg string) error {
	return &ExitError{Code: code, Msg: msg}
}

// setup loads configuration, applies flag overrides and installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("dataset") {
		cfg.Dataset.Path = datasetPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.Log.Level),
	})
	slog.SetDefault(slog.New(handler))
	return nil
}

// loadDirectory builds the directory from the configured dataset or the
// bundled one.
func loadDirectory() (*countries.Directory, error) {
	log := slog.Default().With(config.LogKeyComponent, config.CompCLI)
	opts := []countries.Option{
		countries.WithDerivedTranslations(cfg.Language.Derived...),
		countries.WithLogger(slog.Default()),
	}
	if cfg.Dataset.Path != "" {
		log.Debug("loading dataset", config.LogKeyPath, cfg.Dataset.Path)
		return countries.LoadFile(cfg.Dataset.Path, opts...)
	}
	return countries.LoadBundled(opts...)
}

func newResolver() countries.Resolver {
	return countries.NewResolver(cfg.Language.Default)
}

func newProjector(dir *countries.Directory) *projection.Projector {
	return projection.NewProjector(dir, newResolver(),
		projection.WithCache(cfg.Projection.CacheSize),
		projection.WithLogger(slog.Default()),
	)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	// Version needs neither config nor dataset.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s)\n", config.AppName, Version, Commit, BuildTime)
	},
}
