package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/tldrc/pkg/errors"
)

func TestListFor(t *testing.T) {
	m, dir := newPopulatedManager(t, nil)
	writePage(t, dir, "pages.en", "linux", "tar")
	writePage(t, dir, "pages.en", "linux", "dmesg")
	writePage(t, dir, "pages.en", "common", "cat")
	writePage(t, dir, "pages.en", "osx", "caffeinate")

	pages, err := m.ListFor("linux")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dmesg", "tar"}, pages)

	pages, err = m.ListFor("common")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, pages)

	_, err = m.ListFor("temple_os")
	assert.ErrorIs(t, err, errors.ErrPlatformUnknown)
}

func TestListAll(t *testing.T) {
	m, dir := newPopulatedManager(t, nil)
	writePage(t, dir, "pages.en", "linux", "tar")
	writePage(t, dir, "pages.en", "osx", "tar")
	writePage(t, dir, "pages.en", "common", "cat")
	// Translations must not leak into the English listing.
	writePage(t, dir, "pages.fr", "common", "chien")

	pages, err := m.ListAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "tar"}, pages)
}

func TestLanguagesAndPlatforms(t *testing.T) {
	m, dir := newPopulatedManager(t, nil)
	writePage(t, dir, "pages.en", "linux", "tar")
	writePage(t, dir, "pages.en", "common", "cat")
	writePage(t, dir, "pages.pt_BR", "common", "cat")
	writePage(t, dir, "pages.fr", "common", "cat")

	langs, err := m.Languages()
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr", "pt_BR"}, langs)

	platforms, err := m.Platforms()
	require.NoError(t, err)
	assert.Equal(t, []string{"common", "linux"}, platforms)
}

func TestGetInfo(t *testing.T) {
	m, dir := newPopulatedManager(t, nil)
	writePage(t, dir, "pages.en", "linux", "tar")
	writePage(t, dir, "pages.en", "common", "cat")
	writePage(t, dir, "pages.fr", "common", "cat")

	info, err := m.GetInfo()
	require.NoError(t, err)

	assert.Equal(t, dir, info.Directory)
	assert.GreaterOrEqual(t, info.Age.Nanoseconds(), int64(0))
	require.Len(t, info.Languages, 2)
	assert.Equal(t, "en", info.Languages[0].Language)
	assert.Equal(t, 2, info.Languages[0].Pages)
	assert.Equal(t, "fr", info.Languages[1].Language)
	assert.Equal(t, 1, info.Languages[1].Pages)
	assert.Equal(t, 3, info.Total)
}
