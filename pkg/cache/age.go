package cache

import (
	"os"
	"time"

	"github.com/glorpus-work/tldrc/pkg/errors"
)

// Age returns how long ago the cache was last updated, based on the
// modification time of the persisted checksum manifest (falling back to
// the cache root for caches written before the manifest existed).
//
// The value is computed once per process. An elapsed duration below zero
// means the system clock moved backwards; that is surfaced as an explicit
// error instead of pretending the cache is fresh.
func (m *Manager) Age() (time.Duration, error) {
	m.ageOnce.Do(func() {
		info, err := os.Stat(m.manifestPath())
		if err != nil {
			info, err = os.Stat(m.dir)
		}
		if err != nil {
			m.ageErr = errors.Wrap(err, "failed to read cache modification time")
			return
		}

		elapsed := time.Since(info.ModTime())
		if elapsed < 0 {
			m.ageErr = errors.ErrClockSkew
			return
		}
		m.age = elapsed
	})
	return m.age, m.ageErr
}
