// Package chart turns normalized entries into a bounded, deterministically
// ordered ranking of canonical URLs by summed visit count.
package chart

import (
	"sort"
	"time"

	"github.com/histy/histy/internal/normalize"
)

// Row is one ranked chart line.
type Row struct {
	Rank   int
	URL    string
	Visits int64
}

// Chart is the ranked, bounded list of canonical URLs plus the earliest
// visit time covered by the underlying records. It is built once per run
// and handed to a renderer unchanged.
type Chart struct {
	Rows  []Row
	Since time.Time
}

// Empty reports whether the chart holds no entries. Since is undefined
// (zero) for an empty chart.
func (c Chart) Empty() bool {
	return len(c.Rows) == 0
}

// Aggregator groups and ranks normalized entries.
type Aggregator struct {
	defaultTop int
	maxTop     int
}

// NewAggregator returns an Aggregator using defaultTop when callers pass a
// non-positive top and capping every chart at maxTop.
func NewAggregator(defaultTop, maxTop int) *Aggregator {
	return &Aggregator{defaultTop: defaultTop, maxTop: maxTop}
}

// Aggregate groups entries by canonical URL, sums visit counts, and returns
// the top entries ordered by descending count. Equal counts order by
// ascending URL so identical input always yields an identical chart.
//
// topN <= 0 clamps to the default chart length (it originates from
// user-facing arguments); every result is capped at the configured maximum.
// Ranks run 1..k with no gaps.
func (a *Aggregator) Aggregate(entries []normalize.Entry, topN int, since time.Time) Chart {
	if topN <= 0 {
		topN = a.defaultTop
	}
	if topN > a.maxTop {
		topN = a.maxTop
	}

	sums := make(map[string]int64, len(entries))
	for _, e := range entries {
		sums[e.CanonicalURL] += e.VisitCount
	}

	rows := make([]Row, 0, len(sums))
	for url, visits := range sums {
		rows = append(rows, Row{URL: url, Visits: visits})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Visits != rows[j].Visits {
			return rows[i].Visits > rows[j].Visits
		}
		return rows[i].URL < rows[j].URL
	})

	if len(rows) > topN {
		rows = rows[:topN]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}

	if len(rows) == 0 {
		return Chart{}
	}
	return Chart{Rows: rows, Since: since}
}
