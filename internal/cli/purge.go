package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/histy/histy/internal/config"
	"github.com/histy/histy/internal/snapshot"
)

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithConfig(cfg)
}

// executeWithConfig runs purge against a provided config (for testing).
func (c *PurgeCommand) executeWithConfig(cfg *config.Config) error {
	in := c.stdin
	if in == nil {
		in = os.Stdin
	}
	out := c.stdout
	if out == nil {
		out = os.Stdout
	}

	cacheDir, err := cfg.Snapshot.ResolveCacheDir()
	if err != nil {
		return err
	}

	mgr := snapshot.NewManager(cacheDir, cfg.Snapshot.TTL(), newLogger(cfg, false))
	snap, ok := mgr.Cached()
	if !ok {
		fmt.Fprintln(out, "No cached snapshot to delete.")
		return nil
	}

	if !c.Force {
		fmt.Fprintf(out, "Delete cached snapshot %s? [y/N] ", snap.Path)
		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && answer == "" {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := mgr.Purge(); err != nil {
		return err
	}

	fmt.Fprintln(out, "Cached snapshot deleted.")
	return nil
}
