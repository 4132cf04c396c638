package snapshot

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// cacheName is the file name of the snapshot inside the cache directory.
const cacheName = "History.sqlite"

// Sentinel errors for the two fatal snapshot failure modes. Both abort the
// run; neither is transient in a single-shot invocation.
var (
	// ErrSourceUnavailable means the live history store does not exist or
	// cannot be read.
	ErrSourceUnavailable = errors.New("history source unavailable")

	// ErrCacheWrite means the cache directory or snapshot file cannot be
	// written (permissions, disk full).
	ErrCacheWrite = errors.New("snapshot cache not writable")
)

// Snapshot is a point-in-time, read-only copy of the history store.
type Snapshot struct {
	Path    string
	TakenAt time.Time
	Reused  bool
}

// Manager takes snapshots of the live history store, reusing a cached copy
// while it is younger than the TTL.
type Manager struct {
	cache FileCache
	log   *slog.Logger
}

// NewManager returns a Manager caching snapshots under cacheDir for ttl.
func NewManager(cacheDir string, ttl time.Duration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cache: FileCache{Dir: cacheDir, TTL: ttl},
		log:   logger,
	}
}

// Take returns a usable snapshot of the store at source. A cached copy
// younger than the TTL is returned unchanged with zero I/O against the
// source; otherwise the source is copied byte-for-byte into the cache,
// overwriting any stale copy. The source is never opened for writing and
// no exclusive lock is taken, so a browser holding the file open does not
// block the copy.
func (m *Manager) Take(source string) (Snapshot, error) {
	if _, err := os.Stat(source); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	path, takenAt, reused, err := m.cache.GetOrRefresh(cacheName, func(dst string) error {
		return copyFile(source, dst)
	})
	if err != nil {
		return Snapshot{}, err
	}

	if reused {
		m.log.Info("snapshot cache hit", "path", path, "taken_at", takenAt)
	} else {
		m.log.Info("snapshot cache miss, copied source", "source", source, "path", path)
	}

	return Snapshot{Path: path, TakenAt: takenAt, Reused: reused}, nil
}

// Cached reports the current cache entry without refreshing it.
func (m *Manager) Cached() (Snapshot, bool) {
	path, modTime, ok := m.cache.Entry(cacheName)
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{Path: path, TakenAt: modTime, Reused: true}, true
}

// Purge removes the cached snapshot. Removing a cache that does not exist
// is not an error.
func (m *Manager) Purge() error {
	path, _, ok := m.cache.Entry(cacheName)
	if !ok {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: removing snapshot: %v", ErrCacheWrite, err)
	}
	return nil
}

// copyFile copies src to dst, classifying failures into the snapshot error
// taxonomy. A read failure is a source problem; create/write failures are
// cache problems.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("%w: copying store: %v", ErrCacheWrite, err)
	}

	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("%w: flushing snapshot: %v", ErrCacheWrite, err)
	}

	return nil
}
