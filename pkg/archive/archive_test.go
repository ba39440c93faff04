package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tldr-pages.en.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func TestExtractPages(t *testing.T) {
	archivePath := writeZip(t, map[string]string{
		"linux/tar.md":  "# tar\n",
		"linux/sed.md":  "# sed\n",
		"common/tar.md": "# tar\n",
		"LICENSE.md":    "loose top-level file, not a page",
	})
	destDir := filepath.Join(t.TempDir(), "pages.en")

	n, err := NewManager(nil).ExtractPages(context.Background(), archivePath, destDir)
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.FileExists(t, filepath.Join(destDir, "linux", "tar.md"))
	assert.FileExists(t, filepath.Join(destDir, "linux", "sed.md"))
	assert.FileExists(t, filepath.Join(destDir, "common", "tar.md"))
	assert.NoFileExists(t, filepath.Join(destDir, "LICENSE.md"))
}

func TestExtractPagesStartsFromEmptyDir(t *testing.T) {
	destDir := filepath.Join(t.TempDir(), "pages.en")
	require.NoError(t, os.MkdirAll(filepath.Join(destDir, "linux"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(destDir, "linux", "removed-upstream.md"), []byte("stale"), 0o644))

	archivePath := writeZip(t, map[string]string{"linux/tar.md": "# tar\n"})

	n, err := NewManager(nil).ExtractPages(context.Background(), archivePath, destDir)
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.NoFileExists(t, filepath.Join(destDir, "linux", "removed-upstream.md"))
}

func TestExtractPagesSkipsSymlinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tldr-pages.en.zip")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	hdr := &zip.FileHeader{Name: "linux/evil-link.md"}
	hdr.SetMode(os.ModeSymlink | 0o777)
	w, err := zw.CreateHeader(hdr)
	require.NoError(t, err)
	_, err = w.Write([]byte("/etc/passwd"))
	require.NoError(t, err)

	w, err = zw.Create("linux/tar.md")
	require.NoError(t, err)
	_, err = w.Write([]byte("# tar\n"))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	log := &recordingLogger{}
	destDir := filepath.Join(t.TempDir(), "pages.en")
	n, err := NewManager(log).ExtractPages(context.Background(), path, destDir)
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.NoFileExists(t, filepath.Join(destDir, "linux", "evil-link.md"))
	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "symlink")
}

func TestEnclosedPath(t *testing.T) {
	destDir := t.TempDir()
	am := NewManager(nil)

	tests := []struct {
		name  string
		entry string
		ok    bool
	}{
		{"plain page path", "linux/tar.md", true},
		{"nested path", "linux/sub/tar.md", true},
		{"parent escape", "../evil.md", false},
		{"nested parent escape", "linux/../../evil.md", false},
		{"absolute path", "/etc/passwd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, ok := am.enclosedPath(destDir, tt.entry)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, filepath.IsAbs(target))
			}
		})
	}
}
