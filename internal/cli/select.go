package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hightemp/countrypicker/internal/config"
	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/geo"
	"github.com/hightemp/countrypicker/internal/output"
	"github.com/hightemp/countrypicker/internal/selection"
	"github.com/spf13/cobra"
)

var (
	initialCode string
	fromIP      string
	geoIPPath   string
)

var selectCmd = &cobra.Command{
	Use:   "select <code>",
	Short: "Run a picker selection and print the resulting event",
	Long: `Creates a picker, selects code in it and prints the selection event:
code, primary calling code and localized name. Codes missing from the
directory are accepted and reported without a name or calling code.

Examples:
  countrypicker select DE
  countrypicker select --lang fra --json DE
  countrypicker select --from-ip 81.2.69.142 --geoip-db GeoLite2-Country.mmdb FR`,
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().StringVar(&initialCode, "initial", "", "code selected when the picker is created")
	selectCmd.Flags().StringVar(&fromIP, "from-ip", "", "derive the initial code from this IP address")
	selectCmd.Flags().StringVar(&geoIPPath, "geoip-db", "", "MaxMind country database for --from-ip")
}

func runSelect(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	code := strings.ToUpper(strings.TrimSpace(args[0]))
	if !countries.ValidCode(code) {
		return exitWithCode(ExitInvalidInput, fmt.Sprintf("Invalid country code: %q (want two letters)", args[0]))
	}

	dir, err := loadDirectory()
	if err != nil {
		return err
	}

	initial := strings.ToUpper(strings.TrimSpace(initialCode))
	if initial == "" && fromIP != "" {
		initial, err = locateInitial(fromIP)
		if err != nil {
			return err
		}
	}

	var event selection.Event
	picker := selection.New(dir,
		selection.WithInitialCode(initial),
		selection.WithLanguage(langFlag),
		selection.WithResolver(newResolver()),
		selection.WithLogger(slog.Default()),
		selection.WithHandler(func(ev selection.Event) { event = ev }),
	)
	slog.Debug("picker created",
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyPicker, picker.ID(),
		config.LogKeyCode, picker.State().SelectedCode,
	)

	picker.Select(code)

	if jsonOutput {
		jsonStr, err := output.FormatEventJSON(event)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, jsonStr)
	} else {
		fmt.Fprintln(out, output.FormatEventText(event))
	}
	return nil
}

func locateInitial(ip string) (string, error) {
	path := geoIPPath
	if path == "" {
		path = cfg.GeoIP.Path
	}
	if path == "" {
		return "", exitWithCode(ExitInvalidInput, "--from-ip needs --geoip-db or geoip.path in the config")
	}

	locator, err := geo.Open(path)
	if err != nil {
		return "", err
	}
	defer locator.Close()

	code, err := locator.CountryCode(ip)
	if err != nil {
		slog.Warn("no initial country for address",
			config.LogKeyComponent, config.CompGeo,
			config.LogKeyIP, ip,
			config.LogKeyError, err,
		)
		return "", nil
	}
	return code, nil
}
