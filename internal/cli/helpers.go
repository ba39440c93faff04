package cli

import (
	"time"

	"github.com/glorpus-work/tldrc/internal/logger"
	"github.com/glorpus-work/tldrc/pkg/cache"
	"github.com/glorpus-work/tldrc/pkg/config"
	"github.com/glorpus-work/tldrc/pkg/download"
)

// effectiveConfigPath is the config file the command will read: the
// --config flag when given, the default location otherwise.
func effectiveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.GetDefaultConfigPath()
}

// loadConfig reads the configuration and finishes logger setup with the
// configured level. Flags always win over the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(effectiveConfigPath())
	if err != nil {
		return nil, err
	}

	level := cfg.Settings.LogLevel
	if verbose {
		level = "debug"
	}
	logger.Init(logger.Options{Level: level, Quiet: quiet, NoColor: noColor})
	return cfg, nil
}

// newCacheManager builds the cache engine from the configuration.
func newCacheManager(cfg *config.Config) (*cache.Manager, error) {
	fetcher := download.NewManager(time.Duration(cfg.Settings.HTTPTimeout), "")
	m, err := cache.NewManager(cfg.Cache.Dir, cfg.Cache.Mirror, fetcher, logger.Reporter{})
	if err != nil {
		return nil, err
	}
	m.SetLayout(cfg.CacheLayout())
	return m, nil
}

// loadConfigAndManager is the common preamble of every cache-touching
// command.
func loadConfigAndManager() (*config.Config, *cache.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	m, err := newCacheManager(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, m, nil
}
