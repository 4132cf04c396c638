package cli

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/histy/histy/internal/config"
	"github.com/histy/histy/internal/history"
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
// cache directory, browser opening disabled, and no domain exclusions.
func testConfig(t *testing.T, source string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Snapshot.SourcePath = source
	cfg.Snapshot.CacheDir = t.TempDir()
	cfg.Chart.ExcludeDomains = nil
	cfg.Output.OpenBrowser = false
	cfg.Output.HTMLFile = filepath.Join(t.TempDir(), "charts.html")
	return cfg
}
