// Package render presents a ranked chart. Which renderer runs is decided by
// the caller and injected; the analysis pipeline never branches on output
// format.
package render

import "github.com/histy/histy/internal/chart"

// Renderer consumes a finished chart. Implementations must handle the empty
// chart gracefully rather than failing.
type Renderer interface {
	Render(c chart.Chart) error
}

// sinceLayout formats the oldest-entry date for display, e.g. "15 Jan, 2020".
const sinceLayout = "02 Jan, 2006"
