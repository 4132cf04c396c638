package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/histy/histy/internal/chart"
)

func sampleChart() chart.Chart {
	return chart.Chart{
		Since: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Rows: []chart.Row{
			{Rank: 1, URL: "https://a.com/", Visits: 12345},
			{Rank: 2, URL: "http://b.com/", Visits: 5},
		},
	}
}

func TestConsoleRender(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsole(&buf)

	require.NoError(t, r.Render(sampleChart()))
	out := buf.String()

	assert.Contains(t, out, "Top 2 visited sites since 15 Jan, 2024")
	assert.Contains(t, out, "https://a.com/")
	assert.Contains(t, out, "http://b.com/")
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "URL")
}

func TestConsoleRenderEmptyChart(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsole(&buf)

	require.NoError(t, r.Render(chart.Chart{}))
	assert.Contains(t, buf.String(), "No visits recorded.")
}

func TestHTMLRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "charts.html")
	r := NewHTML(path, false, nil)

	require.NoError(t, r.Render(sampleChart()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "<title>History Charts</title>")
	assert.Contains(t, out, "15 Jan, 2024")
	assert.Contains(t, out, `href="https://a.com/"`)
	assert.Contains(t, out, "12,345")
}

func TestHTMLRenderEmptyChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.html")
	r := NewHTML(path, false, nil)

	require.NoError(t, r.Render(chart.Chart{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "No visits recorded.")
}

func TestHTMLRenderOverwritesPreviousReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.html")
	r := NewHTML(path, false, nil)

	require.NoError(t, r.Render(sampleChart()))
	require.NoError(t, r.Render(chart.Chart{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "https://a.com/")
}
