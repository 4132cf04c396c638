package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/histy/histy/internal/snapshot"
)

func TestChartConsoleOutput(t *testing.T) {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	source := newHistoryDB(t, []fixtureRow{
		{"https://a.com/x", 5, base.Add(time.Hour)},
		{"https://a.com/y", 3, base.Add(2 * time.Hour)},
		{"http://b.com/", 5, base},
		{"chrome://version", 1, base},
	})

	var buf bytes.Buffer
	cmd := &ChartCommand{
		CLI:     true,
		globals: &GlobalFlags{},
		stdout:  &buf,
	}

	require.NoError(t, cmd.executeWithConfig(testConfig(t, source)))
	out := buf.String()

	assert.Contains(t, out, "Top 2 visited sites since 15 Jan, 2024")
	assert.Contains(t, out, "https://a.com/")
	assert.Contains(t, out, "http://b.com/")
	assert.NotContains(t, out, "chrome://version")
}

func TestChartJSONOutput(t *testing.T) {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	source := newHistoryDB(t, []fixtureRow{
		{"https://a.com/x", 5, base},
		{"https://a.com/y", 3, base},
		{"http://b.com/", 5, base},
	})

	var buf bytes.Buffer
	cmd := &ChartCommand{
		globals: &GlobalFlags{JSON: true},
		stdout:  &buf,
	}

	require.NoError(t, cmd.executeWithConfig(testConfig(t, source)))

	var payload struct {
		Since string `json:"since"`
		Rows  []struct {
			Rank   int    `json:"rank"`
			URL    string `json:"url"`
			Visits int64  `json:"visits"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))

	require.Len(t, payload.Rows, 2)
	assert.Equal(t, 1, payload.Rows[0].Rank)
	assert.Equal(t, "https://a.com/", payload.Rows[0].URL)
	assert.Equal(t, int64(8), payload.Rows[0].Visits)
	assert.Equal(t, "http://b.com/", payload.Rows[1].URL)
	assert.Equal(t, "2024-01-15T00:00:00Z", payload.Since)
}

func TestChartHTMLOutput(t *testing.T) {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	source := newHistoryDB(t, []fixtureRow{
		{"https://a.com/", 5, base},
	})

	htmlPath := filepath.Join(t.TempDir(), "report.html")
	cmd := &ChartCommand{
		HTML:    true,
		Out:     htmlPath,
		globals: &GlobalFlags{},
		stdout:  &bytes.Buffer{},
	}

	require.NoError(t, cmd.executeWithConfig(testConfig(t, source)))

	data, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "https://a.com/")
}

func TestChartEmptyHistory(t *testing.T) {
	source := newHistoryDB(t, nil)

	var buf bytes.Buffer
	cmd := &ChartCommand{
		CLI:     true,
		globals: &GlobalFlags{},
		stdout:  &buf,
	}

	require.NoError(t, cmd.executeWithConfig(testConfig(t, source)))
	assert.Contains(t, buf.String(), "No visits recorded.")
}

func TestChartMissingSourceFails(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing"))

	cmd := &ChartCommand{
		CLI:     true,
		globals: &GlobalFlags{},
		stdout:  &bytes.Buffer{},
	}

	err := cmd.executeWithConfig(cfg)
	assert.ErrorIs(t, err, snapshot.ErrSourceUnavailable)
}
