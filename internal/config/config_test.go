package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hightemp/countrypicker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config lookup at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(config.EnvConfigPath, "")
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultLanguage, cfg.Language.Default)
	assert.Equal(t, config.DefaultDerivedLanguages, cfg.Language.Derived)
	assert.Equal(t, config.DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, config.DefaultProjectionCacheSize, cfg.Projection.CacheSize)
	assert.Empty(t, cfg.Dataset.Path)
	assert.Empty(t, cfg.GeoIP.Path)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "picker.yaml")
	content := `
language:
  default: fra
  derived: [deu, ita]
server:
  addr: "127.0.0.1:9090"
projection:
  cache_size: 8
dataset:
  path: /tmp/countries.yaml
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "fra", cfg.Language.Default)
	assert.Equal(t, []string{"deu", "ita"}, cfg.Language.Derived)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.Projection.CacheSize)
	assert.Equal(t, "/tmp/countries.yaml", cfg.Dataset.Path)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := config.Load(filepath.Join(dir, "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("COUNTRYPICKER_SERVER_ADDR", ":7000")
	t.Setenv("COUNTRYPICKER_LANGUAGE_DEFAULT", "spa")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "spa", cfg.Language.Default)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, config.ParseLogLevel(tt.in))
		})
	}
}
