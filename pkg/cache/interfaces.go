//go:generate mockgen -destination=./mocks/cache.go -package=mocks . Fetcher,Reporter

package cache

import "context"

// Fetcher is the subset of the download manager used by the cache: one call
// for the checksum manifest and one per language archive. Fetchers never
// touch the cache directory.
type Fetcher interface {
	FetchManifest(ctx context.Context, mirror string) ([]byte, error)
	FetchLanguageArchive(ctx context.Context, mirror, lang string) ([]byte, error)
}

// Reporter receives user-facing progress and warning messages. The cache
// itself never writes to the console; the caller injects whatever sink it
// wants (a colored logger, a quiet one, a test recorder).
type Reporter interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// noopReporter is used when the caller passes a nil Reporter.
type noopReporter struct{}

func (noopReporter) Infof(string, ...interface{}) {}
func (noopReporter) Warnf(string, ...interface{}) {}
