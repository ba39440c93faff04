package cache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/tldrc/pkg/cache"
	"github.com/glorpus-work/tldrc/pkg/errors"
	"github.com/glorpus-work/tldrc/pkg/language"
	"github.com/glorpus-work/tldrc/pkg/manifest"
)

func TestNewManager_EmptyDir(t *testing.T) {
	_, err := cache.NewManager("", testMirror, nil, nil)
	assert.ErrorIs(t, err, errors.ErrCacheDirectory)
}

func TestExists(t *testing.T) {
	m, dir := newPopulatedManager(t, nil)
	assert.False(t, m.Exists())

	writePage(t, dir, "pages.en", "common", "cat")
	assert.True(t, m.Exists())
}

func TestExists_LegacyLayout(t *testing.T) {
	m, dir := newPopulatedManager(t, nil)
	layout, err := language.ParseLayout("1")
	require.NoError(t, err)
	m.SetLayout(layout)

	writePage(t, dir, "pages", "common", "cat")
	assert.True(t, m.Exists())
}

func TestClean(t *testing.T) {
	m, dir := newPopulatedManager(t, nil)
	writePage(t, dir, "pages.en", "common", "cat")
	writePage(t, dir, "pages.en", "linux", "tar")

	freed, err := m.Clean()
	require.NoError(t, err)
	assert.Positive(t, freed)
	assert.False(t, m.Exists())

	// The root survives, only the content is gone.
	assert.DirExists(t, dir)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClean_MissingCacheCreatesRoot(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "cache")
	m, err := cache.NewManager(dir, testMirror, nil, nil)
	require.NoError(t, err)

	freed, err := m.Clean()
	require.NoError(t, err)
	assert.Zero(t, freed)
	assert.DirExists(t, dir)
}

func TestAge(t *testing.T) {
	m, dir := newPopulatedManager(t, nil)
	path := filepath.Join(dir, manifest.FileName)
	require.NoError(t, os.WriteFile(path, []byte{}, 0o644))

	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(path, past, past))

	age, err := m.Age()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, age, 2*time.Hour)
	assert.Less(t, age, 3*time.Hour)
}

func TestAge_Memoized(t *testing.T) {
	m, dir := newPopulatedManager(t, nil)
	path := filepath.Join(dir, manifest.FileName)
	require.NoError(t, os.WriteFile(path, []byte{}, 0o644))

	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(path, past, past))

	first, err := m.Age()
	require.NoError(t, err)

	// Touching the manifest afterwards must not change the answer within
	// the same process.
	now := time.Now()
	require.NoError(t, os.Chtimes(path, now, now))

	second, err := m.Age()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAge_ClockSkew(t *testing.T) {
	m, dir := newPopulatedManager(t, nil)
	path := filepath.Join(dir, manifest.FileName)
	require.NoError(t, os.WriteFile(path, []byte{}, 0o644))

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	_, err := m.Age()
	assert.ErrorIs(t, err, errors.ErrClockSkew)
}

func TestAge_FallsBackToCacheRoot(t *testing.T) {
	m, dir := newPopulatedManager(t, nil)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(dir, past, past))

	age, err := m.Age()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, age, time.Hour)
}
