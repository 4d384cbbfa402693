package graph

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/caribdigital/graphhansard/errors"
	"github.com/caribdigital/graphhansard/registry"
)

// DateRange restricts which session graphs participate in a merge.
// Bounds are half-open [Start, End); a zero bound is open on that side.
type DateRange struct {
	Start registry.ISODate `json:"start,omitempty"`
	End   registry.ISODate `json:"end,omitempty"`
}

// Contains reports whether a session date falls inside the range. A
// zero session date is never filtered out.
func (r DateRange) Contains(d registry.ISODate) bool {
	if d.IsZero() {
		return true
	}
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !d.Before(r.End) {
		return false
	}
	return true
}

type edgeKey struct{ source, target string }

// mergeChunks bounds the fan-out of the parallel edge reduction.
const mergeChunks = 4

// Merge combines session graphs into a cumulative graph. Edge counts
// and sentiment tallies sum across matching (source, target) pairs;
// the sum is order-independent, so merging is commutative and
// associative. Every node metric is then recomputed from scratch over
// the merged edge set. An empty cumulativeID gets a generated one.
func (b *Builder) Merge(graphs []*SessionGraph, cumulativeID string, dateRange *DateRange) (*SessionGraph, error) {
	start := time.Now()

	var selected []*SessionGraph
	for _, g := range graphs {
		if g == nil {
			continue
		}
		if dateRange != nil && !dateRange.Contains(g.Date) {
			continue
		}
		selected = append(selected, g)
	}
	if len(selected) == 0 {
		return nil, errors.WrapInvalid(errors.ErrNoGraphs, "Builder", "Merge", "no session graphs to merge")
	}

	if cumulativeID == "" {
		cumulativeID = "cumulative_" + uuid.NewString()
	}

	merged, err := reduceEdges(selected)
	if err != nil {
		return nil, err
	}

	out := &SessionGraph{
		SessionID: cumulativeID,
		Date:      latestDate(selected),
		Edges:     merged,
	}
	b.finalize(out)

	if b.metrics != nil {
		b.metrics.MergeDuration.Observe(time.Since(start).Seconds())
	}
	b.logger.Debug("cumulative graph merged",
		"cumulative_id", cumulativeID,
		"sessions", len(selected),
		"nodes", out.NodeCount,
		"edges", out.EdgeCount)

	return out, nil
}

// reduceEdges sums edge records across graphs as a parallel fold: each
// worker reduces a chunk of graphs into a partial map, and the partials
// combine with the same associative merge. Metric recomputation happens
// once, afterwards, on the fully reduced edge set.
func reduceEdges(graphs []*SessionGraph) ([]EdgeRecord, error) {
	chunks := mergeChunks
	if len(graphs) < chunks {
		chunks = len(graphs)
	}

	partials := make([]map[edgeKey]*EdgeRecord, chunks)
	var eg errgroup.Group
	per := (len(graphs) + chunks - 1) / chunks
	for c := 0; c < chunks; c++ {
		lo := c * per
		hi := lo + per
		if hi > len(graphs) {
			hi = len(graphs)
		}
		c := c
		chunk := graphs[lo:hi]
		eg.Go(func() error {
			acc := make(map[edgeKey]*EdgeRecord)
			for _, g := range chunk {
				accumulateEdges(acc, g.Edges)
			}
			partials[c] = acc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	combined := make(map[edgeKey]*EdgeRecord)
	for _, partial := range partials {
		for _, e := range partial {
			accumulateEdge(combined, *e)
		}
	}

	out := make([]EdgeRecord, 0, len(combined))
	for _, e := range combined {
		e.recomputeSentiment()
		sort.Slice(e.Mentions, func(i, j int) bool {
			if e.Mentions[i].StartTime != e.Mentions[j].StartTime {
				return e.Mentions[i].StartTime < e.Mentions[j].StartTime
			}
			return e.Mentions[i].RawText < e.Mentions[j].RawText
		})
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SourceEntityID != out[j].SourceEntityID {
			return out[i].SourceEntityID < out[j].SourceEntityID
		}
		return out[i].TargetEntityID < out[j].TargetEntityID
	})
	return out, nil
}

func accumulateEdges(acc map[edgeKey]*EdgeRecord, edges []EdgeRecord) {
	for _, e := range edges {
		accumulateEdge(acc, e)
	}
}

func accumulateEdge(acc map[edgeKey]*EdgeRecord, e EdgeRecord) {
	k := edgeKey{source: e.SourceEntityID, target: e.TargetEntityID}
	agg, ok := acc[k]
	if !ok {
		copied := e
		copied.Mentions = append([]MentionDetail(nil), e.Mentions...)
		acc[k] = &copied
		return
	}
	agg.TotalCount += e.TotalCount
	agg.PositiveCount += e.PositiveCount
	agg.NeutralCount += e.NeutralCount
	agg.NegativeCount += e.NegativeCount
	agg.Procedural = agg.Procedural || e.Procedural
	agg.Mentions = append(agg.Mentions, e.Mentions...)
}

func latestDate(graphs []*SessionGraph) registry.ISODate {
	var latest registry.ISODate
	for _, g := range graphs {
		if latest.IsZero() || latest.Before(g.Date) {
			latest = g.Date
		}
	}
	return latest
}
