// Package config provides configuration loading and shared constants.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "countrypicker"

	// EnvPrefix is the prefix for environment overrides (COUNTRYPICKER_SERVER_ADDR, ...).
	EnvPrefix = "COUNTRYPICKER"

	// EnvConfigPath names an explicit config file.
	EnvConfigPath = "COUNTRYPICKER_CONFIG"

	// ConfigDirName is the directory under the user config dir.
	ConfigDirName = "countrypicker"

	// ConfigFileName is the config file base name (extension picks the format).
	ConfigFileName = "config"

	// DefaultLanguage is the translation tag used when a caller passes none.
	DefaultLanguage = "eng"

	// DefaultServerAddr is the listen address for the HTTP API.
	DefaultServerAddr = ":8080"

	// DefaultLogLevel is the default slog level name.
	DefaultLogLevel = "info"

	// DefaultProjectionCacheSize bounds the projector memo cache.
	DefaultProjectionCacheSize = 64

	// DefaultSuggestions is how many near matches are offered for an empty result.
	DefaultSuggestions = 3
)

// DefaultDerivedLanguages are the translation tags filled from CLDR region
// names when the dataset has no explicit translation.
var DefaultDerivedLanguages = []string{
	"ces", "deu", "est", "fin", "fra", "hrv", "hun", "ita", "jpn", "kor",
	"nld", "pol", "por", "rus", "slk", "spa", "swe", "zho",
}

// Viper keys.
const (
	KeyLanguageDefault     = "language.default"
	KeyLanguageDerived     = "language.derived"
	KeyDatasetPath         = "dataset.path"
	KeyGeoIPPath           = "geoip.path"
	KeyServerAddr          = "server.addr"
	KeyLogLevel            = "log.level"
	KeyProjectionCacheSize = "projection.cache_size"
)

// Log keys and component names.
const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyCode      = "code"
	LogKeyLang      = "lang"
	LogKeyFilter    = "filter"
	LogKeyCount     = "count"
	LogKeyPicker    = "picker"
	LogKeyPath      = "path"
	LogKeyAddr      = "addr"
	LogKeyIP        = "ip"
	LogKeyTag       = "tag"

	CompCLI        = "cli"
	CompDirectory  = "directory"
	CompProjection = "projection"
	CompSelection  = "selection"
	CompServer     = "server"
	CompGeo        = "geo"
)

// Config holds runtime configuration.
type Config struct {
	Language   LanguageConfig
	Dataset    DatasetConfig
	GeoIP      GeoIPConfig
	Server     ServerConfig
	Log        LogConfig
	Projection ProjectionConfig
}

// LanguageConfig holds translation settings.
type LanguageConfig struct {
	Default string
	Derived []string
}

// DatasetConfig points at an external dataset; empty uses the bundled one.
type DatasetConfig struct {
	Path string
}

// GeoIPConfig points at a MaxMind country database.
type GeoIPConfig struct {
	Path string
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// ProjectionConfig holds projector settings.
type ProjectionConfig struct {
	CacheSize int `mapstructure:"cache_size"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Language: LanguageConfig{
			Default: DefaultLanguage,
			Derived: append([]string(nil), DefaultDerivedLanguages...),
		},
		Server:     ServerConfig{Addr: DefaultServerAddr},
		Log:        LogConfig{Level: DefaultLogLevel},
		Projection: ProjectionConfig{CacheSize: DefaultProjectionCacheSize},
	}
}

// Load reads configuration from file and env. An explicit path wins over
// $COUNTRYPICKER_CONFIG, which wins over the user config directory. A missing
// default config file is not an error; a missing explicit one is.
func Load(path string) (Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault(KeyLanguageDefault, def.Language.Default)
	v.SetDefault(KeyLanguageDerived, def.Language.Derived)
	v.SetDefault(KeyDatasetPath, "")
	v.SetDefault(KeyGeoIPPath, "")
	v.SetDefault(KeyServerAddr, def.Server.Addr)
	v.SetDefault(KeyLogLevel, def.Log.Level)
	v.SetDefault(KeyProjectionCacheSize, def.Projection.CacheSize)

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(DefaultConfigDir())
		v.SetConfigName(ConfigFileName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Language.Default == "" {
		c.Language.Default = DefaultLanguage
	}
	return c, nil
}

// DefaultConfigDir returns the directory searched for config.{toml,yaml,json}.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to current directory
		dir = "."
	}
	return filepath.Join(dir, ConfigDirName)
}

// ParseLogLevel maps a level name to a slog level. Unknown names are info.
func ParseLogLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return level
}
