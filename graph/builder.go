package graph

import (
	"log/slog"
	"sort"
	"time"

	"github.com/caribdigital/graphhansard/config"
	"github.com/caribdigital/graphhansard/mention"
	"github.com/caribdigital/graphhansard/metric"
	"github.com/caribdigital/graphhansard/registry"
)

// Builder constructs session graphs from mention records and merges
// them into cumulative views. A Builder is stateless between calls and
// safe for concurrent use.
type Builder struct {
	reg     *registry.Registry
	cfg     config.GraphConfig
	metrics *metric.Metrics
	logger  *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// WithMetrics attaches core engine metrics.
func WithMetrics(m *metric.Metrics) Option {
	return func(b *Builder) { b.metrics = m }
}

// NewBuilder creates a graph builder bound to a registry snapshot.
func NewBuilder(reg *registry.Registry, cfg config.GraphConfig, opts ...Option) *Builder {
	b := &Builder{
		reg:    reg,
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildSessionGraph aggregates one session's mention records into a
// directed graph and computes all node metrics. Unresolved mentions and
// self-references never produce edges. An empty record set yields an
// empty graph, not an error.
func (b *Builder) BuildSessionGraph(mentions []mention.Record, sessionID string, date registry.ISODate) *SessionGraph {
	start := time.Now()

	g := &SessionGraph{
		SessionID: sessionID,
		Date:      date,
		Edges:     b.aggregateEdges(mentions),
	}
	b.observeStage("aggregate", start)

	b.finalize(g)

	if b.metrics != nil {
		b.metrics.GraphNodes.Observe(float64(g.NodeCount))
		b.metrics.GraphEdges.Observe(float64(g.EdgeCount))
	}
	b.logger.Debug("session graph built",
		"session_id", sessionID,
		"nodes", g.NodeCount,
		"edges", g.EdgeCount)

	return g
}

// aggregateEdges groups usable mention records by (source, target),
// sums sentiment counts, and tags presiding-officer edges procedural.
// Edge order is deterministic: sorted by source id then target id.
func (b *Builder) aggregateEdges(mentions []mention.Record) []EdgeRecord {
	type key struct{ source, target string }
	edges := make(map[key]*EdgeRecord)

	for _, m := range mentions {
		if !m.Resolved() || m.IsSelfReference || m.SourceEntityID == "" {
			continue
		}

		k := key{source: m.SourceEntityID, target: m.TargetEntityID}
		e, ok := edges[k]
		if !ok {
			e = &EdgeRecord{
				SourceEntityID: k.source,
				TargetEntityID: k.target,
				Procedural:     b.isControl(k.source) || b.isControl(k.target),
			}
			edges[k] = e
		}

		e.TotalCount++
		switch m.Sentiment {
		case mention.SentimentPositive:
			e.PositiveCount++
		case mention.SentimentNegative:
			e.NegativeCount++
		default:
			e.NeutralCount++
		}
		e.Mentions = append(e.Mentions, MentionDetail{
			StartTime:     m.StartTime,
			EndTime:       m.EndTime,
			ContextWindow: m.ContextWindow,
			Sentiment:     m.Sentiment,
			RawText:       m.RawText,
		})
	}

	out := make([]EdgeRecord, 0, len(edges))
	for _, e := range edges {
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
	return out
}

// finalize derives everything below the edge list: the node set,
// degrees, centrality scores, communities, roles, and counts. Both
// session builds and cumulative merges end here, so merged graphs get
// their metrics recomputed from scratch rather than averaged.
func (b *Builder) finalize(g *SessionGraph) {
	seen := make(map[string]bool)
	var ids []string
	for _, e := range g.Edges {
		for _, id := range []string{e.SourceEntityID, e.TargetEntityID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)

	g.Nodes = make([]NodeMetrics, len(ids))
	for i, id := range ids {
		g.Nodes[i] = NodeMetrics{EntityID: id, StructuralRoles: []StructuralRole{}}
		if e := b.reg.Entity(id); e != nil {
			g.Nodes[i].DisplayName = e.CommonName
			g.Nodes[i].Affiliation = e.Affiliation
			g.Nodes[i].Category = e.Category
		}
	}

	political := g.PoliticalEdges()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	for _, e := range political {
		g.Nodes[index[e.SourceEntityID]].OutDegree++
		g.Nodes[index[e.TargetEntityID]].InDegree++
	}

	start := time.Now()
	adj := newAdjacency(ids, political)
	betweenness := adj.betweenness()
	eigenvector := adj.eigenvector(b.cfg.Eigenvector)
	closeness := adj.closeness()
	for i := range g.Nodes {
		g.Nodes[i].Betweenness = betweenness[i]
		g.Nodes[i].Eigenvector = eigenvector[i]
		g.Nodes[i].Closeness = closeness[i]
	}
	b.observeStage("centrality", start)

	start = time.Now()
	assignments, modularity := detectCommunities(adj, b.cfg.Community)
	if assignments != nil {
		for i := range g.Nodes {
			id := assignments[i]
			g.Nodes[i].CommunityID = &id
		}
		g.ModularityScore = modularity
	}
	b.observeStage("community", start)

	start = time.Now()
	assignRoles(g.Nodes, b.cfg.Roles)
	b.observeStage("roles", start)

	g.NodeCount = len(g.Nodes)
	g.EdgeCount = len(g.Edges)
}

func (b *Builder) isControl(entityID string) bool {
	e := b.reg.Entity(entityID)
	return e != nil && e.Category == registry.CategoryControl
}

func (b *Builder) observeStage(stage string, start time.Time) {
	if b.metrics != nil {
		b.metrics.GraphBuildDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}
