// Package pipeline wires the history analysis stages together: snapshot,
// read, normalize, aggregate. Each stage failure aborts the run; there is
// no partial-result recovery across stage boundaries.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/histy/histy/internal/chart"
	"github.com/histy/histy/internal/config"
	"github.com/histy/histy/internal/history"
	"github.com/histy/histy/internal/normalize"
	"github.com/histy/histy/internal/snapshot"
)

// Pipeline runs the full history analysis and produces a ranked chart.
type Pipeline struct {
	cfg *config.Config
	log *slog.Logger
}

// New returns a Pipeline over cfg.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, log: logger}
}

// Run snapshots the history store, reads its visit records, normalizes and
// filters them, and aggregates the result into a chart of at most topN
// entries. An empty history is not an error: the returned chart is simply
// empty.
func (p *Pipeline) Run(ctx context.Context, topN int) (chart.Chart, error) {
	source, err := p.cfg.Snapshot.ResolveSourcePath()
	if err != nil {
		return chart.Chart{}, err
	}
	cacheDir, err := p.cfg.Snapshot.ResolveCacheDir()
	if err != nil {
		return chart.Chart{}, err
	}

	mgr := snapshot.NewManager(cacheDir, p.cfg.Snapshot.TTL(), p.log)
	snap, err := mgr.Take(source)
	if err != nil {
		return chart.Chart{}, err
	}

	reader, err := history.Open(snap.Path)
	if err != nil {
		return chart.Chart{}, err
	}
	defer reader.Close()

	visits, since, err := reader.Visits(ctx)
	if err != nil {
		return chart.Chart{}, err
	}
	p.log.Info("read history records", "records", len(visits))

	norm := normalize.New(p.cfg.Chart.MaxURLLength)
	entries := make([]normalize.Entry, 0, len(visits))
	rejected := 0
	skipped := 0
	for _, v := range visits {
		entry, rej := norm.Normalize(v)
		if rej != nil {
			p.log.Debug("rejected record", "url", rej.LogURL(), "reason", rej.Reason)
			rejected++
			continue
		}
		if hostExcluded(normalize.Host(entry.CanonicalURL), p.cfg.Chart.ExcludeDomains) {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	if rejected > 0 {
		p.log.Info("rejected records", "count", rejected)
	}
	if skipped > 0 {
		p.log.Info("excluded records", "count", skipped)
	}

	agg := chart.NewAggregator(p.cfg.Chart.DefaultTop, p.cfg.Chart.MaxTop)
	result := agg.Aggregate(entries, topN, since)
	p.log.Info("built chart", "rows", len(result.Rows))

	return result, nil
}

// hostExcluded reports whether host falls under any excluded domain: an
// exact match or a subdomain of it.
func hostExcluded(host string, domains []string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
