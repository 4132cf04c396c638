package pipeline

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/histy/histy/internal/config"
	"github.com/histy/histy/internal/history"
	"github.com/histy/histy/internal/snapshot"
)

type fixtureRow struct {
	url        string
	visitCount int64
	lastVisit  time.Time
}

// newHistoryDB writes a minimal Chrome-style history store and returns its path.
func newHistoryDB(t *testing.T, rows []fixtureRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "History")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE urls (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL,
			title TEXT,
			visit_count INTEGER DEFAULT 0 NOT NULL,
			typed_count INTEGER DEFAULT 0 NOT NULL,
			last_visit_time INTEGER NOT NULL,
			hidden INTEGER DEFAULT 0 NOT NULL
		)
	`)
	require.NoError(t, err)

	for _, r := range rows {
		_, err = db.Exec(
			"INSERT INTO urls (url, visit_count, last_visit_time) VALUES (?, ?, ?)",
			r.url, r.visitCount, history.TimeToWebKit(r.lastVisit),
		)
		require.NoError(t, err)
	}

	return path
}

// testConfig returns a config pointing at the given source with an isolated
// cache directory and no domain exclusions.
func testConfig(t *testing.T, source string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Snapshot.SourcePath = source
	cfg.Snapshot.CacheDir = t.TempDir()
	cfg.Chart.ExcludeDomains = nil
	return cfg
}

func TestRunProducesRankedChart(t *testing.T) {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	source := newHistoryDB(t, []fixtureRow{
		{"https://a.com/x", 5, base.Add(24 * time.Hour)},
		{"https://a.com/y", 3, base.Add(48 * time.Hour)},
		{"http://b.com/", 5, base},
		{"chrome://version", 1, base},
	})

	p := New(testConfig(t, source), nil)
	c, err := p.Run(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, c.Rows, 2)
	assert.Equal(t, 1, c.Rows[0].Rank)
	assert.Equal(t, "https://a.com/", c.Rows[0].URL)
	assert.Equal(t, int64(8), c.Rows[0].Visits)
	assert.Equal(t, 2, c.Rows[1].Rank)
	assert.Equal(t, "http://b.com/", c.Rows[1].URL)
	assert.Equal(t, int64(5), c.Rows[1].Visits)

	assert.Equal(t, base, c.Since, "since is the earliest raw visit considered")
}

func TestRunEmptyStoreYieldsEmptyChart(t *testing.T) {
	source := newHistoryDB(t, nil)

	p := New(testConfig(t, source), nil)
	c, err := p.Run(context.Background(), 10)
	require.NoError(t, err)
	assert.True(t, c.Empty())
}

func TestRunAppliesDomainExclusions(t *testing.T) {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	source := newHistoryDB(t, []fixtureRow{
		{"https://keep.com/", 2, base},
		{"https://doubleclick.net/ad", 99, base},
	})

	cfg := testConfig(t, source)
	cfg.Chart.ExcludeDomains = []string{"doubleclick.net"}

	p := New(cfg, nil)
	c, err := p.Run(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, c.Rows, 1)
	assert.Equal(t, "https://keep.com/", c.Rows[0].URL)
}

func TestRunExcludesSubdomainsOfExcludedDomains(t *testing.T) {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	source := newHistoryDB(t, []fixtureRow{
		{"https://keep.com/", 2, base},
		{"https://stats.g.doubleclick.net/pixel", 99, base},
		{"https://notdoubleclick.net/", 4, base},
	})

	cfg := testConfig(t, source)
	cfg.Chart.ExcludeDomains = []string{"doubleclick.net"}

	p := New(cfg, nil)
	c, err := p.Run(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, c.Rows, 2)
	assert.Equal(t, "https://notdoubleclick.net/", c.Rows[0].URL)
	assert.Equal(t, "https://keep.com/", c.Rows[1].URL)
}

func TestRunMissingSourceFails(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing"))

	p := New(cfg, nil)
	_, err := p.Run(context.Background(), 10)
	assert.ErrorIs(t, err, snapshot.ErrSourceUnavailable)
}

func TestRunCorruptSourceFails(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "History")
	require.NoError(t, os.WriteFile(source, []byte("definitely not a sqlite database"), 0644))

	cfg := testConfig(t, source)
	p := New(cfg, nil)
	_, err := p.Run(context.Background(), 10)
	assert.ErrorIs(t, err, history.ErrCorruptSnapshot)
}

func TestRunReusesSnapshotWithinTTL(t *testing.T) {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	source := newHistoryDB(t, []fixtureRow{
		{"https://a.com/", 5, base},
	})

	cfg := testConfig(t, source)
	p := New(cfg, nil)

	first, err := p.Run(context.Background(), 10)
	require.NoError(t, err)

	// New rows in the source must stay invisible while the cache is fresh.
	db, err := sql.Open("sqlite3", source)
	require.NoError(t, err)
	_, err = db.Exec(
		"INSERT INTO urls (url, visit_count, last_visit_time) VALUES (?, ?, ?)",
		"https://new.com/", 50, history.TimeToWebKit(base),
	)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	second, err := p.Run(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
