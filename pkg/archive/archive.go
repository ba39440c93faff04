// Package archive extracts per-language page archives into the cache.
package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"

	"github.com/glorpus-work/tldrc/pkg/fsutil"
)

// Logger is the minimal logging capability the extractor needs to report
// skipped entries.
type Logger interface {
	Warnf(format string, args ...interface{})
}

// Manager handles extraction of language archives.
type Manager struct {
	log Logger
}

// NewManager creates a new Manager instance. log may be nil.
func NewManager(log Logger) *Manager {
	return &Manager{log: log}
}

// ExtractPages extracts all page files from the archive at archivePath into
// destDir and returns the number of pages written.
//
// destDir is removed and recreated first, so pages that no longer exist
// upstream are not left behind. Entries that would resolve outside destDir
// and symlink entries are logged and skipped: a hostile archive must not
// write outside the cache, but must not abort an otherwise good update
// either. Loose top-level files are skipped too, because only files inside
// a platform directory are genuine pages. Any filesystem error is fatal.
func (am *Manager) ExtractPages(ctx context.Context, archivePath, destDir string) (int, error) {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to open archive file: %w", err)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	if err := fsutil.RecreateDir(destDir); err != nil {
		return 0, fmt.Errorf("failed to reset destination directory: %w", err)
	}

	pages := 0
	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		wrote, err := am.extractEntry(fsys, path, destDir, d)
		if wrote {
			pages++
		}
		return err
	}

	if err := fs.WalkDir(fsys, ".", walkFn); err != nil {
		return 0, err
	}
	return pages, nil
}

// extractEntry processes a single archive entry. It reports whether a page
// file was written.
func (am *Manager) extractEntry(fsys fs.FS, path, destDir string, d fs.DirEntry) (bool, error) {
	if path == "." {
		return false, nil
	}

	target, ok := am.enclosedPath(destDir, path)
	if !ok {
		am.warnf("skipping archive entry %q: path escapes the cache directory", path)
		return false, nil
	}

	if d.IsDir() {
		return false, fsutil.EnsureDir(target)
	}

	info, err := d.Info()
	if err != nil {
		return false, fmt.Errorf("failed to get file info for %s: %w", path, err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		am.warnf("skipping archive entry %q: symlinks are not extracted", path)
		return false, nil
	}

	// A file outside any directory cannot be a page.
	if !strings.Contains(path, "/") {
		return false, nil
	}

	if err := am.writePage(fsys, path, target); err != nil {
		return false, err
	}
	return true, nil
}

// enclosedPath resolves an archive entry path below destDir, rejecting
// absolute paths and `..` escapes.
func (am *Manager) enclosedPath(destDir, path string) (string, bool) {
	native := filepath.FromSlash(path)
	if !filepath.IsLocal(native) {
		return "", false
	}

	target := filepath.Join(destDir, native)
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return target, true
}

func (am *Manager) writePage(fsys fs.FS, path, target string) error {
	srcFile, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", path, err)
	}
	defer func() { _ = srcFile.Close() }()

	if err := fsutil.EnsureDir(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", path, err)
	}

	dstFile, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", target, err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file %s: %w", path, err)
	}
	return nil
}

func (am *Manager) warnf(format string, args ...interface{}) {
	if am.log != nil {
		am.log.Warnf(format, args...)
	}
}
