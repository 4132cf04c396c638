package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/histy/histy/internal/chart"
)

// Console renders the chart as a terminal table.
type Console struct {
	Out io.Writer
}

// NewConsole returns a console renderer writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{Out: out}
}

// Render writes the ranked chart as a bordered table preceded by a summary
// line. An empty chart prints a short notice instead.
func (r *Console) Render(c chart.Chart) error {
	if c.Empty() {
		_, err := fmt.Fprintln(r.Out, "No visits recorded.")
		return err
	}

	if _, err := fmt.Fprintf(r.Out, "\nTop %d visited sites since %s\n", len(c.Rows), c.Since.Format(sinceLayout)); err != nil {
		return err
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle
		}).
		Headers("#", "URL", "VISITS")

	for _, row := range c.Rows {
		t.Row(strconv.Itoa(row.Rank), row.URL, humanize.Comma(row.Visits))
	}

	_, err := fmt.Fprintln(r.Out, t.Render())
	return err
}
