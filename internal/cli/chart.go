package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/histy/histy/internal/chart"
	"github.com/histy/histy/internal/config"
	"github.com/histy/histy/internal/pipeline"
	"github.com/histy/histy/internal/render"
)

// chartJSON is the JSON output structure for the chart command.
type chartJSON struct {
	Since string        `json:"since,omitempty"`
	Rows  []chartRowJSON `json:"rows"`
}

type chartRowJSON struct {
	Rank   int    `json:"rank"`
	URL    string `json:"url"`
	Visits int64  `json:"visits"`
}

// Execute implements the go-flags Commander interface for ChartCommand.
func (c *ChartCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithConfig(cfg)
}

// executeWithConfig runs the pipeline against a provided config (for testing).
func (c *ChartCommand) executeWithConfig(cfg *config.Config) error {
	logger := newLogger(cfg, c.globals != nil && c.globals.Verbose)

	result, err := pipeline.New(cfg, logger).Run(context.Background(), c.Top)
	if err != nil {
		return err
	}

	out := c.stdout
	if out == nil {
		out = os.Stdout
	}

	if c.globals != nil && c.globals.JSON {
		return printChartJSON(out, result)
	}

	renderer, err := c.pickRenderer(cfg, out)
	if err != nil {
		return err
	}
	return renderer.Render(result)
}

// pickRenderer selects the presenter. An explicit flag wins; otherwise HTML
// is the default, falling back to the console when stdout is not a terminal
// (piped output should stay capturable).
func (c *ChartCommand) pickRenderer(cfg *config.Config, out io.Writer) (render.Renderer, error) {
	if c.CLI {
		return render.NewConsole(out), nil
	}
	if !c.HTML && !stdoutIsTerminal() {
		return render.NewConsole(out), nil
	}

	htmlPath := c.Out
	if htmlPath == "" {
		htmlPath = cfg.Output.HTMLFile
	}
	htmlPath, err := config.ExpandPath(htmlPath)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, c.globals != nil && c.globals.Verbose)
	return render.NewHTML(htmlPath, cfg.Output.OpenBrowser, logger), nil
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func printChartJSON(out io.Writer, result chart.Chart) error {
	payload := chartJSON{Rows: make([]chartRowJSON, len(result.Rows))}
	if !result.Empty() {
		payload.Since = result.Since.UTC().Format(time.RFC3339)
	}
	for i, row := range result.Rows {
		payload.Rows[i] = chartRowJSON{Rank: row.Rank, URL: row.URL, Visits: row.Visits}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
