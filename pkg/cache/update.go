package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/glorpus-work/tldrc/pkg/errors"
	"github.com/glorpus-work/tldrc/pkg/fsutil"
	"github.com/glorpus-work/tldrc/pkg/language"
	"github.com/glorpus-work/tldrc/pkg/manifest"
)

// UpdateResult summarizes one update batch.
type UpdateResult struct {
	// Refreshed lists the languages that were downloaded and extracted.
	Refreshed []string
	// Pages is the total number of pages extracted in this batch.
	Pages int
	// New is the page count delta against the previous snapshots of the
	// refreshed languages. Negative when upstream removed pages.
	New int
	// BytesFetched is the total size of the downloaded archives.
	BytesFetched int64
}

// verified is a language archive that passed the checksum gate and is
// staged on disk awaiting extraction.
type verified struct {
	lang        string
	digest      string
	archivePath string
}

// Update synchronizes the requested languages against the mirror.
//
// A language is stale when its remote digest differs from the persisted
// one or its directory is missing; everything else is left untouched. All
// stale archives are fetched and checksum-verified before any extraction
// starts, and the merged manifest is persisted only after every extraction
// succeeded. A crash mid-batch therefore leaves the manifest describing
// the previous successful state, and the next run re-attempts every
// language that did not finish.
func (m *Manager) Update(ctx context.Context, languages []string) (*UpdateResult, error) {
	if err := fsutil.EnsureDir(m.dir); err != nil {
		return nil, errors.Wrap(err, "failed to create cache directory")
	}

	// Download archives in deterministic alphabetical order. The caller's
	// priority order only matters for resolution, not for updates.
	langs := language.DedupPreserve(languages)
	sort.Strings(langs)

	m.rep.Infof("downloading '%s'...", manifest.FileName)
	data, err := m.fetcher.FetchManifest(ctx, m.mirror)
	if err != nil {
		return nil, err
	}
	remote, err := manifest.Parse(data)
	if err != nil {
		return nil, err
	}
	local := manifest.Load(m.manifestPath())

	staging, err := os.MkdirTemp("", "tldrc-update-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create staging directory")
	}
	defer func() { _ = os.RemoveAll(staging) }()

	result := &UpdateResult{}
	var batch []verified
	for _, lang := range langs {
		digest, ok := remote[lang]
		if !ok {
			// The mirror does not serve this language. Not an error: the
			// feed is allowed to lag behind the user's wish list.
			continue
		}
		langDir := m.layout.Dir(lang)
		if local[lang] == digest && m.langDirExists(langDir) {
			m.rep.Infof("'%s' is up to date", langDir)
			continue
		}

		m.rep.Infof("downloading 'tldr-pages.%s.zip'...", lang)
		archiveData, err := m.fetcher.FetchLanguageArchive(ctx, m.mirror, lang)
		if err != nil {
			return nil, err
		}
		result.BytesFetched += int64(len(archiveData))

		if err := manifest.Verify(archiveData, digest); err != nil {
			// One bad archive poisons the whole batch: nothing from this
			// run may be persisted.
			return nil, errors.Wrapf(err, "validating 'tldr-pages.%s.zip'", lang)
		}

		archivePath := filepath.Join(staging, fmt.Sprintf("tldr-pages.%s.zip", lang))
		if err := os.WriteFile(archivePath, archiveData, fsutil.FileModeDefault); err != nil {
			return nil, errors.Wrap(err, "failed to stage archive")
		}
		batch = append(batch, verified{lang: lang, digest: digest, archivePath: archivePath})
	}

	for _, v := range batch {
		langDir := m.layout.Dir(v.lang)
		previous := m.countPages(langDir)

		pages, err := m.extractor.ExtractPages(ctx, v.archivePath, filepath.Join(m.dir, langDir))
		if err != nil {
			// Languages extracted earlier in this batch stay in place; the
			// manifest still describes the previous state, so they will be
			// re-attempted on the next run.
			return nil, errors.Wrapf(err, "extracting '%s'", langDir)
		}
		m.rep.Infof("extracted '%s': %d pages, %d new", langDir, pages, pages-previous)

		result.Refreshed = append(result.Refreshed, v.lang)
		result.Pages += pages
		result.New += pages - previous
	}

	merged := make(manifest.Manifest, len(local)+len(batch))
	for lang, digest := range local {
		merged[lang] = digest
	}
	for _, v := range batch {
		merged[v.lang] = v.digest
	}
	if err := merged.Save(m.manifestPath()); err != nil {
		return nil, errors.Wrap(err, "failed to persist checksum manifest")
	}

	m.rep.Infof("cache update successful (total: %d pages, %d new)", result.Pages, result.New)
	return result, nil
}
