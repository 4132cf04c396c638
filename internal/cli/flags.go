package cli

import (
	"io"
)

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ChartCommand — build and render the top-visited-sites chart.
type ChartCommand struct {
	Top  int    `short:"t" long:"top" description:"Number of entries to display (0 uses the configured default)" default:"0"`
	CLI  bool   `short:"c" long:"cli" description:"Print the chart to the console instead of writing HTML"`
	HTML bool   `long:"html" description:"Write the HTML report even when stdout is not a terminal"`
	Out  string `long:"out" description:"HTML report path (overrides config)"`

	globals *GlobalFlags
	stdout  io.Writer // injectable for testing; nil means os.Stdout
}

// StatusCommand — show source, cache freshness, and snapshot statistics.
type StatusCommand struct {
	globals *GlobalFlags
	version string
	stdout  io.Writer // injectable for testing; nil means os.Stdout
}

// PurgeCommand — delete the cached snapshot with safety confirmation.
type PurgeCommand struct {
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	stdin   io.Reader // injectable for testing; nil means os.Stdin
	stdout  io.Writer // injectable for testing; nil means os.Stdout
}
