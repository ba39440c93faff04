// Package download fetches the checksum manifest and the per-language page
// archives from a tldr-pages mirror.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/glorpus-work/tldrc/pkg/errors"
	"github.com/glorpus-work/tldrc/pkg/manifest"
)

const (
	// DefaultTimeout bounds connecting, resolving and reading a response.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxResponseSize caps how much of a response body is read, so a
	// misbehaving or compromised mirror cannot exhaust memory.
	DefaultMaxResponseSize = int64(1) << 30 // 1 GiB
)

// Manager is the HTTP fetcher for mirror assets. All transfers happen in
// memory: archives are verified against their manifest digest before
// anything is committed to disk.
type Manager struct {
	client    *http.Client
	userAgent string
	maxSize   int64
}

// NewManager creates a new download manager with the given timeout and user agent.
func NewManager(timeout time.Duration, userAgent string) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = "tldrc/1.0"
	}
	return &Manager{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		maxSize:   DefaultMaxResponseSize,
	}
}

// FetchManifest downloads the checksum manifest from the mirror.
func (m *Manager) FetchManifest(ctx context.Context, mirror string) ([]byte, error) {
	return m.get(ctx, assetURL(mirror, manifest.FileName))
}

// FetchLanguageArchive downloads the zip archive holding all pages for one
// language.
func (m *Manager) FetchLanguageArchive(ctx context.Context, mirror, lang string) ([]byte, error) {
	return m.get(ctx, assetURL(mirror, fmt.Sprintf("tldr-pages.%s.zip", lang)))
}

func (m *Manager) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", pkgerrors.ErrDownloadFailed, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d for %s", pkgerrors.ErrDownloadFailed, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, m.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", pkgerrors.ErrDownloadFailed, url, err)
	}
	if int64(len(body)) > m.maxSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", pkgerrors.ErrResponseTooLarge, url, m.maxSize)
	}
	return body, nil
}

func assetURL(mirror, name string) string {
	return strings.TrimSuffix(mirror, "/") + "/" + name
}
