// Package config loads and persists the tldrc configuration file. The
// file is YAML, lives under the user's XDG config directory by default,
// and every field has a working default so a missing file is never an
// error.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/tldrc/pkg/errors"
	"github.com/glorpus-work/tldrc/pkg/fsutil"
	"github.com/glorpus-work/tldrc/pkg/language"
)

// Default configuration values.
const (
	// DefaultMirror is the official tldr-pages release feed.
	DefaultMirror = "https://github.com/tldr-pages/tldr/releases/latest/download"

	// DefaultMaxAge is how old the cache may grow before lookups trigger
	// an automatic update.
	DefaultMaxAge = 14 * 24 * time.Hour

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2

	appName = "tldrc"
)

// Duration is a time.Duration that reads and writes the human form
// ("48h", "10s") instead of raw nanoseconds.
type Duration time.Duration

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return errors.Wrap(errors.ErrConfigParse, err.Error())
	}
	*d = Duration(parsed)
	return nil
}

// CacheConfig controls where pages are stored and how they are refreshed.
type CacheConfig struct {
	// Dir is the cache root directory.
	Dir string `yaml:"dir,omitempty"`

	// Mirror is the base URL the checksum manifest and language archives
	// are downloaded from.
	Mirror string `yaml:"mirror"`

	// Languages are downloaded on update in addition to English and the
	// languages detected from the environment.
	Languages []string `yaml:"languages,omitempty"`

	// AutoUpdate refreshes the cache during page lookups once it is older
	// than MaxAge.
	AutoUpdate bool `yaml:"auto_update"`

	// MaxAge is the cache age threshold for AutoUpdate.
	MaxAge Duration `yaml:"max_age"`

	// Layout is the cache directory layout version. Older caches kept
	// English in a bare `pages` directory.
	Layout string `yaml:"layout,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// Network settings
	HTTPTimeout Duration `yaml:"http_timeout"`

	// Output settings
	LogLevel string `yaml:"log_level"` // error, warn, info, debug
}

// Config represents the application configuration.
type Config struct {
	Cache    CacheConfig `yaml:"cache"`
	Settings Settings    `yaml:"settings"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Dir:        filepath.Join(xdg.CacheHome, appName),
			Mirror:     DefaultMirror,
			AutoUpdate: true,
			MaxAge:     Duration(DefaultMaxAge),
		},
		Settings: Settings{
			HTTPTimeout: Duration(10 * time.Second),
			LogLevel:    "info",
		},
	}
}

// Load loads configuration from a file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.Wrap(errors.ErrConfigParse, "empty config path")
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadFromReader(file)
}

// LoadFromReader loads configuration from an io.Reader.
func LoadFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyDefaults fills fields an explicit config file left empty.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Cache.Dir == "" {
		c.Cache.Dir = defaults.Cache.Dir
	}
	if c.Cache.Mirror == "" {
		c.Cache.Mirror = defaults.Cache.Mirror
	}
	if c.Cache.MaxAge == 0 {
		c.Cache.MaxAge = defaults.Cache.MaxAge
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Cache.MaxAge < 0 {
		return errors.Wrap(errors.ErrConfigParse, "cache.max_age must not be negative")
	}
	if c.Settings.HTTPTimeout < 0 {
		return errors.Wrap(errors.ErrConfigParse, "settings.http_timeout must not be negative")
	}
	switch c.Settings.LogLevel {
	case "error", "warn", "info", "debug":
	default:
		return errors.Wrapf(errors.ErrConfigParse, "invalid log level %q", c.Settings.LogLevel)
	}
	if c.Cache.Layout != "" {
		if _, err := language.ParseLayout(c.Cache.Layout); err != nil {
			return errors.Wrap(errors.ErrConfigParse, err.Error())
		}
	}
	return nil
}

// CacheLayout returns the parsed cache layout, defaulting when the config
// does not pin one. Validate has already rejected unparseable values.
func (c *Config) CacheLayout() language.Layout {
	if c.Cache.Layout == "" {
		return language.DefaultLayout()
	}
	layout, err := language.ParseLayout(c.Cache.Layout)
	if err != nil {
		return language.DefaultLayout()
	}
	return layout
}

// UpdateLanguages is the language list for cache updates: environment
// languages first, then the configured extras, with English always
// included. Duplicates are kept; the cache dedups on use.
func (c *Config) UpdateLanguages() []string {
	langs := language.FromEnv()
	langs = append(langs, c.Cache.Languages...)
	return append(langs, language.English)
}

// LookupLanguages is the language priority list for page lookups:
// environment languages in priority order with English as the final
// fallback.
func (c *Config) LookupLanguages() []string {
	return append(language.FromEnv(), language.English)
}

// Save writes the configuration to a file, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	if err := fsutil.EnsureDir(filepath.Dir(path)); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := c.ToYAML()
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data)
}

// GenerateDefault writes a default config file at path. An existing file
// is never overwritten.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Wrapf(errors.ErrConfigFileExists, "'%s'", path)
	}
	return DefaultConfig().Save(path)
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return buf.Bytes(), nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yml")
}
