package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Chart  *ChartCommand
	Status *StatusCommand
	Purge  *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "histy"
	parser.LongDescription = "Ranked top-visited-sites charts from your local browser history."

	cmds := &commands{
		Chart:  &ChartCommand{globals: &globals},
		Status: &StatusCommand{globals: &globals, version: version},
		Purge:  &PurgeCommand{globals: &globals},
	}

	parser.AddCommand("chart", "Build the top-visited-sites chart", "Snapshot the history store, rank the most visited sites, and render the result as HTML or a console table.", cmds.Chart)
	parser.AddCommand("status", "Show snapshot cache and history statistics", "Show the history source, snapshot cache freshness, and record statistics.", cmds.Status)
	parser.AddCommand("purge", "Delete the cached snapshot", "Delete the cached snapshot so the next run copies the live store again.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the histy CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the
// matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("histy %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
