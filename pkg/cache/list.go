package cache

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/glorpus-work/tldrc/pkg/language"
)

// LanguageCount is the number of pages cached for one language.
type LanguageCount struct {
	Language string
	Pages    int
}

// Info describes the state of the cache for reporting.
type Info struct {
	Directory string
	Age       time.Duration
	Languages []LanguageCount
	Total     int
}

// listDir returns the page file names under one platform directory of one
// language. A missing directory yields an empty list, because some
// translations do not carry every platform.
func (m *Manager) listDir(platform, langDir string) []string {
	entries, err := os.ReadDir(filepath.Join(m.dir, langDir, platform))
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}

// basenames sorts page file names, drops duplicates (the same page often
// exists under several platforms) and strips the .md suffix.
func basenames(pages []string) []string {
	sort.Strings(pages)
	pages = slices.Compact(pages)

	out := make([]string, 0, len(pages))
	for _, page := range pages {
		out = append(out, strings.TrimSuffix(page, ".md"))
	}
	return out
}

// ListFor lists the English pages available for platform (plus `common`,
// unless common itself was requested), sorted and deduplicated.
func (m *Manager) ListFor(platform string) ([]string, error) {
	if _, err := m.platformsAndCheck(platform); err != nil {
		return nil, err
	}

	englishDir := m.layout.Dir(language.English)
	pages := m.listDir(platform, englishDir)
	if platform != commonPlatform {
		pages = append(pages, m.listDir(commonPlatform, englishDir)...)
	}
	return basenames(pages), nil
}

// ListAll lists all English pages across every discovered platform.
func (m *Manager) ListAll() ([]string, error) {
	pages, err := m.listAllFor(m.layout.Dir(language.English))
	if err != nil {
		return nil, err
	}
	return basenames(pages), nil
}

// listAllFor collects the raw page names of one language directory across
// all discovered platforms.
func (m *Manager) listAllFor(langDir string) ([]string, error) {
	platforms, err := m.platforms()
	if err != nil {
		return nil, err
	}

	var pages []string
	for _, platform := range platforms {
		pages = append(pages, m.listDir(platform, langDir)...)
	}
	return pages, nil
}

// Languages lists the language codes currently present in the cache,
// sorted.
func (m *Manager) Languages() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, err
	}

	var langs []string
	for _, entry := range entries {
		if entry.IsDir() {
			langs = append(langs, m.layout.FromDir(entry.Name()))
		}
	}
	sort.Strings(langs)
	return langs, nil
}

// Platforms lists the discovered platform directories, sorted.
func (m *Manager) Platforms() ([]string, error) {
	return m.platforms()
}

// GetInfo aggregates per-language page counts, the total, and the cache
// age.
func (m *Manager) GetInfo() (*Info, error) {
	age, err := m.Age()
	if err != nil {
		return nil, err
	}

	langs, err := m.Languages()
	if err != nil {
		return nil, err
	}

	info := &Info{Directory: m.dir, Age: age}
	for _, lang := range langs {
		pages, err := m.listAllFor(m.layout.Dir(lang))
		if err != nil {
			return nil, err
		}
		info.Languages = append(info.Languages, LanguageCount{Language: lang, Pages: len(pages)})
		info.Total += len(pages)
	}
	return info, nil
}
