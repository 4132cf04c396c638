package main

import (
	"fmt"
	"os"

	"github.com/histy/histy/internal/cli"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	if err := cli.Run(Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
