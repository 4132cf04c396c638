// Package history reads raw visit records out of a history store snapshot.
// The snapshot is opened strictly read-only and never mutated.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrCorruptSnapshot means the snapshot file cannot be read as a valid
// history store. Fatal; no partial results are returned.
var ErrCorruptSnapshot = errors.New("snapshot is not a valid history store")

// RawVisit is one row of browsing signal from the history store, taken
// verbatim: the full URL, its accumulated visit count, and the time of the
// most recent visit.
type RawVisit struct {
	URL        string
	VisitCount int64
	LastVisit  time.Time
}

// Stats summarizes a snapshot for diagnostic display.
type Stats struct {
	TotalURLs     int64
	VisitedURLs   int64
	EarliestVisit time.Time
	LatestVisit   time.Time
}

// Reader extracts visit records from a snapshot.
type Reader struct {
	db *sql.DB
}

// Open opens the snapshot at path read-only and verifies it parses as a
// history store. Failure to parse is reported as ErrCorruptSnapshot.
func Open(path string) (*Reader, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}

	// sql.Open is lazy; force a read so structural damage surfaces here
	// rather than mid-query.
	var n int64
	if err := db.QueryRow("SELECT count(*) FROM urls").Scan(&n); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	return &Reader{db: db}, nil
}

// Close releases the snapshot connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// Visits returns every record carrying browsing signal, i.e. rows with a
// nonzero visit count (typed-count-only and other auxiliary rows are
// excluded), together with the earliest last-visit time among them. When no
// records qualify, the returned slice is empty and the time is zero.
func (r *Reader) Visits(ctx context.Context) ([]RawVisit, time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT url, visit_count, last_visit_time
		FROM urls
		WHERE visit_count > 0
		ORDER BY last_visit_time ASC
	`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	defer rows.Close()

	var (
		visits []RawVisit
		since  time.Time
	)
	for rows.Next() {
		var (
			url   string
			count int64
			wk    int64
		)
		if err := rows.Scan(&url, &count, &wk); err != nil {
			return nil, time.Time{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}

		v := RawVisit{URL: url, VisitCount: count, LastVisit: TimeFromWebKit(wk)}
		if since.IsZero() && !v.LastVisit.IsZero() {
			since = v.LastVisit
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	return visits, since, nil
}

// Stats returns row counts and the visit time range of the snapshot.
func (r *Reader) Stats(ctx context.Context) (*Stats, error) {
	s := &Stats{}

	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM urls").Scan(&s.TotalURLs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	var earliest, latest sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*), min(last_visit_time), max(last_visit_time)
		FROM urls
		WHERE visit_count > 0
	`).Scan(&s.VisitedURLs, &earliest, &latest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	if earliest.Valid {
		s.EarliestVisit = TimeFromWebKit(earliest.Int64)
	}
	if latest.Valid {
		s.LatestVisit = TimeFromWebKit(latest.Int64)
	}

	return s, nil
}
