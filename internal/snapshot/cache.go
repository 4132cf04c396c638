// Package snapshot produces local, readable copies of the live browser
// history store. The live file may be held open for writing by a running
// browser, so it is never read in place: a byte-for-byte copy is taken into
// a cache directory and reused until its TTL expires.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileCache is a time-boxed cache of files fetched from external resources.
// An entry is valid while its modification time is younger than TTL; an
// expired or missing entry is refreshed by the caller-supplied fill
// function, which overwrites the previous copy in place.
type FileCache struct {
	Dir string
	TTL time.Duration
}

// GetOrRefresh returns the path of the cached entry for name, refreshing it
// via fill when missing or expired. The reused result reports whether the
// existing copy was still fresh (in which case no filesystem write occurs).
func (c FileCache) GetOrRefresh(name string, fill func(dst string) error) (path string, takenAt time.Time, reused bool, err error) {
	path = filepath.Join(c.Dir, name)

	if info, statErr := os.Stat(path); statErr == nil {
		age := time.Since(info.ModTime())
		if age < c.TTL {
			return path, info.ModTime(), true, nil
		}
	}

	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return "", time.Time{}, false, fmt.Errorf("%w: creating cache directory: %v", ErrCacheWrite, err)
	}

	if err := fill(path); err != nil {
		return "", time.Time{}, false, err
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		return "", time.Time{}, false, fmt.Errorf("%w: stat fresh cache entry: %v", ErrCacheWrite, statErr)
	}

	return path, info.ModTime(), false, nil
}

// Entry reports the cached file for name without refreshing it. ok is false
// when no cached copy exists.
func (c FileCache) Entry(name string) (path string, modTime time.Time, ok bool) {
	path = filepath.Join(c.Dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return path, time.Time{}, false
	}
	return path, info.ModTime(), true
}
