package cli

import (
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/tldrc/internal/logger"
	"github.com/glorpus-work/tldrc/pkg/cache"
	"github.com/glorpus-work/tldrc/pkg/config"
	"github.com/glorpus-work/tldrc/pkg/errors"
)

// currentPlatform maps the running OS to its tldr platform directory.
func currentPlatform() string {
	switch runtime.GOOS {
	case "darwin":
		return "osx"
	case "solaris", "illumos":
		return "sunos"
	default:
		return runtime.GOOS
	}
}

// ensureFresh populates an empty cache and refreshes a stale one, unless
// the user asked to stay offline.
func ensureFresh(cmd *cobra.Command, cfg *config.Config, m *cache.Manager) error {
	if !m.Exists() {
		if offline {
			return errors.Wrap(errors.ErrCacheEmpty, "cache is empty and --offline was given")
		}
		logger.Infof("cache is empty, downloading...")
		_, err := m.Update(cmd.Context(), cfg.UpdateLanguages())
		return err
	}

	if !cfg.Cache.AutoUpdate {
		return nil
	}
	age, err := m.Age()
	if err != nil {
		return err
	}
	if age <= time.Duration(cfg.Cache.MaxAge) {
		return nil
	}
	if offline {
		logger.Warnf("cache is stale. Run tldrc without --offline to update.")
		return nil
	}
	logger.Infof("cache is stale, updating...")
	_, err = m.Update(cmd.Context(), cfg.UpdateLanguages())
	return err
}

// runPage resolves a page name and prints the best match to stdout.
func runPage(cmd *cobra.Command, name string) error {
	cfg, m, err := loadConfigAndManager()
	if err != nil {
		return err
	}

	if err := ensureFresh(cmd, cfg, m); err != nil {
		return err
	}

	p := platform
	if p == "" {
		p = currentPlatform()
	}

	langs := cfg.LookupLanguages()
	if len(languages) > 0 {
		langs = languages
	}

	paths, err := m.Find(name, langs, p)
	if err != nil {
		if errors.Is(err, errors.ErrPageNotFound) {
			return notFoundError(err)
		}
		return err
	}

	// Index 0 is the authoritative match; further hits are the same page
	// under other platforms.
	for _, extra := range paths[1:] {
		logger.Debugf("page also available at %s", extra)
	}

	page, err := os.ReadFile(paths[0])
	if err != nil {
		return errors.Wrapf(err, "failed to read page '%s'", paths[0])
	}
	cmd.Print(string(page))
	return nil
}

// notFoundError augments a page-not-found error with remediation that
// depends on how the language list was chosen.
func notFoundError(err error) error {
	if len(languages) > 0 {
		return errors.Wrapf(err,
			"page not found in languages: %s. Try running tldrc without --language",
			strings.Join(languages, ", "))
	}
	return errors.Wrap(err,
		"page not found. Run 'tldrc update', or request the page at https://github.com/tldr-pages/tldr/issues")
}
