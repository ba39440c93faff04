package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glorpus-work/tldrc/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	tests := []struct {
		name        string
		timeout     time.Duration
		userAgent   string
		expectedUA  string
		expectedTmo time.Duration
	}{
		{
			name:        "defaults",
			expectedUA:  "tldrc/1.0",
			expectedTmo: DefaultTimeout,
		},
		{
			name:        "custom values",
			timeout:     2 * time.Second,
			userAgent:   "test-agent/1.0",
			expectedUA:  "test-agent/1.0",
			expectedTmo: 2 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.timeout, tt.userAgent)
			require.NotNil(t, m)
			assert.Equal(t, tt.expectedTmo, m.client.Timeout)
			assert.Equal(t, tt.expectedUA, m.userAgent)
			assert.Equal(t, DefaultMaxResponseSize, m.maxSize)
		})
	}
}

func TestFetchManifest(t *testing.T) {
	var gotPath, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("abc  assets/tldr-pages.en.zip\n"))
	}))
	defer server.Close()

	m := NewManager(time.Second, "tldrc-test/1.0")
	data, err := m.FetchManifest(context.Background(), server.URL+"/")

	require.NoError(t, err)
	assert.Equal(t, "abc  assets/tldr-pages.en.zip\n", string(data))
	assert.Equal(t, "/tldr.sha256sums", gotPath)
	assert.Equal(t, "tldrc-test/1.0", gotUA)
}

func TestFetchLanguageArchive(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("zip bytes"))
	}))
	defer server.Close()

	m := NewManager(time.Second, "")
	data, err := m.FetchLanguageArchive(context.Background(), server.URL, "pt_BR")

	require.NoError(t, err)
	assert.Equal(t, "zip bytes", string(data))
	assert.Equal(t, "/tldr-pages.pt_BR.zip", gotPath)
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	m := NewManager(time.Second, "")
	_, err := m.FetchManifest(context.Background(), server.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDownloadFailed)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchResponseTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(make([]byte, 64))
	}))
	defer server.Close()

	m := NewManager(time.Second, "")
	m.maxSize = 16
	_, err := m.FetchLanguageArchive(context.Background(), server.URL, "en")

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrResponseTooLarge)
}

func TestFetchContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("too late"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewManager(time.Second, "")
	_, err := m.FetchManifest(ctx, server.URL)
	require.Error(t, err)
}
