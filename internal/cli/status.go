package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/histy/histy/internal/config"
	"github.com/histy/histy/internal/history"
	"github.com/histy/histy/internal/snapshot"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version        string `json:"version"`
	SourcePath     string `json:"source_path"`
	SourceExists   bool   `json:"source_exists"`
	SnapshotPath   string `json:"snapshot_path,omitempty"`
	SnapshotAgeSec int64  `json:"snapshot_age_seconds,omitempty"`
	SnapshotFresh  bool   `json:"snapshot_fresh"`
	TTLSeconds     int    `json:"ttl_seconds"`
	TotalURLs      int64  `json:"total_urls"`
	VisitedURLs    int64  `json:"visited_urls"`
	EarliestVisit  string `json:"earliest_visit,omitempty"`
	LatestVisit    string `json:"latest_visit,omitempty"`
	DefaultTop     int    `json:"default_top"`
	MaxTop         int    `json:"max_top"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithConfig(cfg)
}

// executeWithConfig runs status against a provided config (for testing).
func (c *StatusCommand) executeWithConfig(cfg *config.Config) error {
	out := c.stdout
	if out == nil {
		out = os.Stdout
	}

	source, err := cfg.Snapshot.ResolveSourcePath()
	if err != nil {
		return err
	}
	cacheDir, err := cfg.Snapshot.ResolveCacheDir()
	if err != nil {
		return err
	}

	info := statusJSON{
		Version:    c.version,
		SourcePath: source,
		TTLSeconds: cfg.Snapshot.TTLSeconds,
		DefaultTop: cfg.Chart.DefaultTop,
		MaxTop:     cfg.Chart.MaxTop,
	}

	if _, err := os.Stat(source); err == nil {
		info.SourceExists = true
	}

	mgr := snapshot.NewManager(cacheDir, cfg.Snapshot.TTL(), newLogger(cfg, false))
	snap, ok := mgr.Cached()
	if ok {
		age := time.Since(snap.TakenAt)
		info.SnapshotPath = snap.Path
		info.SnapshotAgeSec = int64(age.Seconds())
		info.SnapshotFresh = age < cfg.Snapshot.TTL()

		if stats, err := snapshotStats(snap.Path); err == nil {
			info.TotalURLs = stats.TotalURLs
			info.VisitedURLs = stats.VisitedURLs
			if !stats.EarliestVisit.IsZero() {
				info.EarliestVisit = stats.EarliestVisit.UTC().Format(time.RFC3339)
			}
			if !stats.LatestVisit.IsZero() {
				info.LatestVisit = stats.LatestVisit.UTC().Format(time.RFC3339)
			}
		}
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	return printStatusHuman(out, info)
}

// snapshotStats opens the cached snapshot and reads its statistics.
func snapshotStats(path string) (*history.Stats, error) {
	reader, err := history.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return reader.Stats(context.Background())
}

func printStatusHuman(out io.Writer, info statusJSON) error {
	fmt.Fprintln(out, "Histy Status")
	fmt.Fprintln(out, "============")
	fmt.Fprintf(out, "Version:     %s\n", info.Version)
	if info.SourceExists {
		fmt.Fprintf(out, "Source:      %s\n", info.SourcePath)
	} else {
		fmt.Fprintf(out, "Source:      %s (missing)\n", info.SourcePath)
	}

	if info.SnapshotPath == "" {
		fmt.Fprintln(out, "Snapshot:    none")
	} else {
		freshness := "stale"
		if info.SnapshotFresh {
			freshness = "fresh"
		}
		age := formatAge(time.Duration(info.SnapshotAgeSec) * time.Second)
		fmt.Fprintf(out, "Snapshot:    %s (%s old, %s)\n", info.SnapshotPath, age, freshness)
		fmt.Fprintf(out, "URLs:        %d (%d with visits)\n", info.TotalURLs, info.VisitedURLs)
		if info.EarliestVisit != "" {
			fmt.Fprintf(out, "Earliest:    %s\n", info.EarliestVisit)
		}
		if info.LatestVisit != "" {
			fmt.Fprintf(out, "Latest:      %s\n", info.LatestVisit)
		}
	}

	fmt.Fprintf(out, "TTL:         %s\n", formatAge(time.Duration(info.TTLSeconds)*time.Second))
	fmt.Fprintf(out, "Chart:       top %d (max %d)\n", info.DefaultTop, info.MaxTop)
	return nil
}
