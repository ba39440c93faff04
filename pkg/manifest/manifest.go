// Package manifest parses and persists the tldr-pages checksum manifest,
// the plain-text listing that maps each language archive to its SHA-256
// digest. Two instances exist at any time: the manifest just fetched from
// the mirror and the one persisted by the previous successful update.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/glorpus-work/tldrc/pkg/errors"
	"github.com/glorpus-work/tldrc/pkg/fsutil"
)

// FileName is the name of the checksum manifest, both on the mirror and as
// persisted inside the cache root.
const FileName = "tldr.sha256sums"

// Manifest maps a language code to the hex SHA-256 digest of that
// language's page archive.
type Manifest map[string]string

// Parse reads a sumfile of whitespace-separated `<digest> <path>` lines.
//
// Lines whose path does not end in .zip, or that reference the aggregate
// tldr.zip / tldr-pages.zip archives, are expected non-language entries and
// are skipped. A line with fewer than two tokens, or a zip path that does
// not encode a language (`tldr-pages.<lang>.zip`), is a hard parse error:
// a corrupt manifest must not silently produce an empty, falsely
// "up to date" result.
func Parse(data []byte) (Manifest, error) {
	m := make(Manifest)

	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, errors.Wrapf(errors.ErrManifestInvalid, "line %d: expected '<digest> <path>', got %q", i+1, line)
		}
		digest, zipPath := fields[0], fields[1]

		if !strings.HasSuffix(zipPath, ".zip") ||
			strings.HasSuffix(zipPath, "tldr.zip") ||
			strings.HasSuffix(zipPath, "tldr-pages.zip") {
			continue
		}

		// The language is the second dot-delimited component of the final
		// path segment (tldr-pages.<lang>.zip).
		parts := strings.Split(path.Base(zipPath), ".")
		if len(parts) < 3 {
			return nil, errors.Wrapf(errors.ErrManifestInvalid, "line %d: no language in archive name %q", i+1, zipPath)
		}
		m[parts[1]] = digest
	}

	return m, nil
}

// Load reads the manifest persisted by the previous successful update.
// A missing or unreadable file yields an empty manifest: without a trusted
// previous state every language is considered stale.
func Load(filePath string) Manifest {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Manifest{}
	}
	m, err := Parse(data)
	if err != nil {
		return Manifest{}
	}
	return m
}

// Save writes the manifest atomically, sorted by language so that the
// on-disk form is deterministic.
func (m Manifest) Save(filePath string) error {
	langs := make([]string, 0, len(m))
	for lang := range m {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	var sb strings.Builder
	for _, lang := range langs {
		fmt.Fprintf(&sb, "%s  assets/tldr-pages.%s.zip\n", m[lang], lang)
	}

	return fsutil.WriteFileAtomic(filePath, []byte(sb.String()))
}

// Verify compares the SHA-256 digest of data against the hex digest
// claimed by a manifest entry.
func Verify(data []byte, wantHex string) error {
	sum := sha256.Sum256(data)
	got := hex.EncodeToString(sum[:])
	if got != strings.ToLower(strings.TrimSpace(wantHex)) {
		return fmt.Errorf("%w: expected %s, got %s", errors.ErrChecksumMismatch, wantHex, got)
	}
	return nil
}
