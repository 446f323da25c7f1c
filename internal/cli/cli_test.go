package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/hightemp/countrypicker/internal/config"
	"github.com/hightemp/countrypicker/internal/projection"
)

func TestNoMatchMessage(t *testing.T) {
	tests := []struct {
		name        string
		suggestions []projection.Entry
		want        string
	}{
		{"none", nil, `No country matches "zzz"`},
		{"one", []projection.Entry{{Name: "France"}}, `No country matches "zzz". Did you mean: France?`},
		{"two", []projection.Entry{{Name: "France"}, {Name: "Greece"}}, `No country matches "zzz". Did you mean: France, Greece?`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := noMatchMessage("zzz", tt.suggestions); got != tt.want {
				t.Errorf("noMatchMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatIndexRow(t *testing.T) {
	offset := 390.0
	tests := []struct {
		name string
		row  indexRow
		want string
	}{
		{"present", indexRow{Letter: "G", Position: 3}, "G\t3"},
		{"absent", indexRow{Letter: "X", Position: -1}, "X\t-"},
		{"with offset", indexRow{Letter: "S", Position: 8, Offset: &offset}, "S\t8\t390"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatIndexRow(tt.row); got != tt.want {
				t.Errorf("formatIndexRow() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"index", "list", "lookup", "select", "serve", "version"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv(config.EnvConfigPath, "")

	jsonOutput, langFlag, configPath, datasetPath, logLevel = false, "", "", "", ""
	indexFilter, initialCode, fromIP, geoIPPath = "", "", "", ""
	rowHeight, listPadding, viewportHeight = 0, 0, 0
	suggestCount, withPositions = config.DefaultSuggestions, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if err != nil {
		return ExitFailure
	}
	return ExitSuccess
}

func TestListJSON(t *testing.T) {
	out, err := runCLI(t, "list", "many", "--json")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var entries []projection.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("Invalid JSON: %v\n%s", err, out)
	}
	if len(entries) == 0 {
		t.Fatal("Expected at least one entry")
	}
	found := false
	for _, e := range entries {
		if !strings.Contains(strings.ToLower(e.Name), "many") {
			t.Errorf("Entry %s (%s) does not match filter", e.Code, e.Name)
		}
		if e.Code == "DE" {
			found = true
		}
	}
	if !found {
		t.Error("Expected DE in results")
	}
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"list match", []string{"list", "many"}, ExitSuccess},
		{"list no match", []string{"list", "zzzz"}, ExitNotFound},
		{"lookup found", []string{"lookup", "de"}, ExitSuccess},
		{"lookup invalid", []string{"lookup", "123"}, ExitInvalidInput},
		{"lookup missing", []string{"lookup", "QQ"}, ExitNotFound},
		{"index found", []string{"index", "G"}, ExitSuccess},
		{"index absent", []string{"index", "X"}, ExitNotFound},
		{"index word", []string{"index", "Germany"}, ExitInvalidInput},
		{"select invalid", []string{"select", "D3"}, ExitInvalidInput},
		{"select unknown", []string{"select", "QQ"}, ExitSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if got := exitCode(err); got != tt.want {
				t.Errorf("exit code = %d, expected %d (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestLookupText(t *testing.T) {
	out, err := runCLI(t, "lookup", "de")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "DE\t🇩🇪\t+49\tGermany" {
		t.Errorf("lookup output = %q", got)
	}
}

func TestSelectEvent(t *testing.T) {
	out, err := runCLI(t, "select", "--lang", "fra", "DE")
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "DE\t+49\tAllemagne" {
		t.Errorf("select output = %q", got)
	}

	out, err = runCLI(t, "select", "--json", "de")
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(out), &ev); err != nil {
		t.Fatalf("Invalid JSON: %v\n%s", err, out)
	}
	if ev["code"] != "DE" || ev["calling_code"] != "49" || ev["name"] != "Germany" {
		t.Errorf("unexpected event %v", ev)
	}
	if ev["picker_id"] == "" {
		t.Error("event should carry a picker id")
	}
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "countrypicker dev") {
		t.Errorf("version output = %q", out)
	}
}
