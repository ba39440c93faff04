package cache

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/glorpus-work/tldrc/pkg/errors"
	"github.com/glorpus-work/tldrc/pkg/language"
)

// commonPlatform is the catch-all platform directory that every language
// may carry and that is always part of the search order.
const commonPlatform = "common"

// platforms discovers the platform set from the English language
// directory. The set is open: the page corpus can add platforms this
// binary has never heard of, so nothing is hard-coded. The result is
// sorted because directory iteration order is not stable across runs.
func (m *Manager) platforms() ([]string, error) {
	englishDir := filepath.Join(m.dir, m.layout.Dir(language.English))
	entries, err := os.ReadDir(englishDir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCacheEmpty, "reading '%s'", englishDir)
	}

	var result []string
	for _, entry := range entries {
		if entry.IsDir() {
			result = append(result, entry.Name())
		}
	}
	if len(result) == 0 {
		return nil, errors.Wrapf(errors.ErrCacheEmpty, "'%s' contains no platform directories", englishDir)
	}

	sort.Strings(result)
	return result, nil
}

// platformsAndCheck discovers the platform set and validates the requested
// platform against it. The error names the valid platforms found on disk.
func (m *Manager) platformsAndCheck(platform string) ([]string, error) {
	platforms, err := m.platforms()
	if err != nil {
		return nil, err
	}
	if !slices.Contains(platforms, platform) {
		return nil, errors.Wrapf(errors.ErrPlatformUnknown,
			"platform '%s' does not exist, possible values: %s", platform, strings.Join(platforms, ", "))
	}
	return platforms, nil
}

// findPageFor returns the first on-disk page for file under platform,
// trying the language directories in priority order.
func (m *Manager) findPageFor(file, platform string, langDirs []string) (string, bool) {
	for _, langDir := range langDirs {
		path := filepath.Join(m.dir, langDir, platform, file)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// Find resolves a page name to an ordered list of file paths following the
// tldr client specification's resolution order: the requested platform
// first (skipped when it is `common`), then `common`, then every other
// discovered platform in sorted order. Within each platform, languages are
// tried in the caller's priority order.
//
// Index 0 of the result is the authoritative match; any further entries
// are pages for the same name found under other platforms. An empty result
// is reported as a not-found error.
func (m *Manager) Find(name string, languages []string, platform string) ([]string, error) {
	platforms, err := m.platformsAndCheck(platform)
	if err != nil {
		return nil, err
	}

	file := name + ".md"
	// The order is defined by the user, only duplicates are dropped.
	langDirs := m.layout.Dirs(language.DedupPreserve(languages))

	var result []string

	// `common` is always searched, so the platform pass is skipped when the
	// user asked for `common` itself (it must not be searched twice).
	if platform != commonPlatform {
		if path, ok := m.findPageFor(file, platform, langDirs); ok {
			result = append(result, path)
		}
	}

	if path, ok := m.findPageFor(file, commonPlatform, langDirs); ok {
		result = append(result, path)
	}

	for _, altPlatform := range platforms {
		if altPlatform == platform || altPlatform == commonPlatform {
			continue
		}
		path, ok := m.findPageFor(file, altPlatform, langDirs)
		if !ok {
			continue
		}
		if len(result) == 0 {
			if platform == commonPlatform {
				m.rep.Warnf("showing page from platform '%s', because '%s' does not exist in 'common'",
					altPlatform, name)
			} else {
				m.rep.Warnf("showing page from platform '%s', because '%s' does not exist in '%s' and 'common'",
					altPlatform, name, platform)
			}
		}
		result = append(result, path)
	}

	if len(result) == 0 {
		return nil, errors.Wrapf(errors.ErrPageNotFound, "page '%s'", name)
	}
	return result, nil
}
