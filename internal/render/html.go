package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/histy/histy/internal/chart"
)

//go:embed templates/base.html
var baseHTML string

var htmlTemplate = template.Must(template.New("base").Parse(baseHTML))

// HTML renders the chart as a standalone HTML page on disk and can open it
// in the default browser.
type HTML struct {
	Path        string
	OpenBrowser bool

	log *slog.Logger
}

// NewHTML returns an HTML renderer writing the report to path.
func NewHTML(path string, openBrowser bool, logger *slog.Logger) *HTML {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTML{Path: path, OpenBrowser: openBrowser, log: logger}
}

type htmlRow struct {
	Rank   int
	URL    string
	Visits string
}

type htmlPage struct {
	Title string
	Since string
	Rows  []htmlRow
}

// Render writes the report file, creating parent directories as needed. An
// empty chart produces a valid no-data page.
func (r *HTML) Render(c chart.Chart) error {
	page := htmlPage{Title: "History Charts"}
	if !c.Empty() {
		page.Since = c.Since.Format(sinceLayout)
		page.Rows = make([]htmlRow, len(c.Rows))
		for i, row := range c.Rows {
			page.Rows[i] = htmlRow{Rank: row.Rank, URL: row.URL, Visits: humanize.Comma(row.Visits)}
		}
	}

	if err := os.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}

	if err := htmlTemplate.Execute(f, page); err != nil {
		f.Close()
		return fmt.Errorf("rendering report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	r.log.Info("wrote HTML report", "path", r.Path, "rows", len(page.Rows))

	if r.OpenBrowser {
		if err := openInBrowser(r.Path); err != nil {
			// The report exists; failing to launch a browser is not fatal.
			r.log.Warn("could not open report in browser", "path", r.Path, "err", err)
		}
	}

	return nil
}
