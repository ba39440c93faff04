// Package cache owns the on-disk tldr page cache: deciding which language
// archives are stale, downloading and verifying them, extracting pages, and
// resolving page lookups against the resulting directory tree.
//
// The layout is one directory per language (pages.<lang>), each holding one
// directory per platform, each holding page files. The persisted checksum
// manifest (tldr.sha256sums) in the cache root records the digests of the
// archives the current tree was extracted from.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glorpus-work/tldrc/pkg/archive"
	"github.com/glorpus-work/tldrc/pkg/errors"
	"github.com/glorpus-work/tldrc/pkg/fsutil"
	"github.com/glorpus-work/tldrc/pkg/language"
	"github.com/glorpus-work/tldrc/pkg/manifest"
)

// Extractor commits one language archive into a language directory and
// returns the number of pages written.
type Extractor interface {
	ExtractPages(ctx context.Context, archivePath, destDir string) (int, error)
}

// Manager implements the cache engine over a single directory tree. The
// tree is treated as exclusively owned by one process invocation; there is
// no locking against concurrent runs.
type Manager struct {
	dir       string
	mirror    string
	layout    language.Layout
	fetcher   Fetcher
	extractor Extractor
	rep       Reporter

	// Cache age is read lazily and memoized for the lifetime of the
	// process, so an update during this invocation does not make the cache
	// look fresh to later age checks.
	ageOnce sync.Once
	age     time.Duration
	ageErr  error
}

// NewManager creates a cache manager rooted at dir, downloading from
// mirror. rep may be nil.
func NewManager(dir, mirror string, fetcher Fetcher, rep Reporter) (*Manager, error) {
	if dir == "" {
		return nil, errors.ErrCacheDirectory
	}
	if rep == nil {
		rep = noopReporter{}
	}
	return &Manager{
		dir:       dir,
		mirror:    mirror,
		layout:    language.DefaultLayout(),
		fetcher:   fetcher,
		extractor: archive.NewManager(rep),
		rep:       rep,
	}, nil
}

// SetLayout overrides the language-directory naming convention.
func (m *Manager) SetLayout(l language.Layout) { m.layout = l }

// Dir returns the cache root directory.
func (m *Manager) Dir() string { return m.dir }

// Exists reports whether the cache has been populated: the English pages
// directory is the one language that is always present after an update.
func (m *Manager) Exists() bool {
	info, err := os.Stat(filepath.Join(m.dir, m.layout.Dir(language.English)))
	return err == nil && info.IsDir()
}

// Clean removes all cached content and recreates an empty cache root, so
// subsequent operations never fail on a missing directory. It returns the
// number of bytes freed.
func (m *Manager) Clean() (int64, error) {
	if _, err := os.Stat(m.dir); os.IsNotExist(err) {
		m.rep.Infof("cache does not exist, not cleaning")
		return 0, fsutil.EnsureDir(m.dir)
	}

	size, _, err := fsutil.DirStats(m.dir)
	if err != nil {
		return 0, errors.Wrap(err, "failed to measure cache directory")
	}

	m.rep.Infof("cleaning the cache directory...")
	if err := fsutil.RecreateDir(m.dir); err != nil {
		return 0, errors.Wrap(err, "failed to clean cache directory")
	}
	return size, nil
}

// manifestPath is the location of the persisted checksum manifest.
func (m *Manager) manifestPath() string {
	return filepath.Join(m.dir, manifest.FileName)
}

// langDirExists reports whether a language directory is currently present.
func (m *Manager) langDirExists(langDir string) bool {
	info, err := os.Stat(filepath.Join(m.dir, langDir))
	return err == nil && info.IsDir()
}

// countPages returns the number of page files currently stored for a
// language directory, zero if it does not exist.
func (m *Manager) countPages(langDir string) int {
	_, count, err := fsutil.DirStats(filepath.Join(m.dir, langDir))
	if err != nil {
		return 0
	}
	return count
}
