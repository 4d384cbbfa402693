// Package graph builds directed, sentiment-weighted interaction graphs
// from mention records and computes centrality metrics, structural
// roles, and community assignments over them. Session graphs are built
// fresh from a record set; cumulative graphs are derived by merging
// session graphs and recomputing every metric from scratch.
package graph

import (
	"github.com/caribdigital/graphhansard/mention"
	"github.com/caribdigital/graphhansard/registry"
)

// StructuralRole labels a node's position in the interaction network.
// Roles are not mutually exclusive; a node may carry several at once.
type StructuralRole string

const (
	// RoleForceMultiplier marks high eigenvector centrality: influence
	// through connection to other influential members.
	RoleForceMultiplier StructuralRole = "force_multiplier"

	// RoleBridge marks high betweenness: the node sits on many shortest
	// paths between other members.
	RoleBridge StructuralRole = "bridge"

	// RoleHub marks high in-degree: the node draws many references.
	RoleHub StructuralRole = "hub"

	// RoleIsolated marks zero total degree. An isolated node carries no
	// other role.
	RoleIsolated StructuralRole = "isolated"
)

// String returns the string representation of the role
func (r StructuralRole) String() string {
	return string(r)
}

// IsValid checks if the role is a known value
func (r StructuralRole) IsValid() bool {
	switch r {
	case RoleForceMultiplier, RoleBridge, RoleHub, RoleIsolated:
		return true
	}
	return false
}

// MentionDetail is one underlying mention retained on an aggregated
// edge for audit and dashboard drill-down.
type MentionDetail struct {
	StartTime     float64                `json:"start_time"`
	EndTime       float64                `json:"end_time"`
	ContextWindow string                 `json:"context_window"`
	Sentiment     mention.SentimentLabel `json:"sentiment_label,omitempty"`
	RawText       string                 `json:"raw_text"`
}

// EdgeRecord is the aggregated interaction from one member toward
// another. Edges touching a control-category entity (the presiding
// officer) are tagged procedural and excluded from the political
// metrics by default.
type EdgeRecord struct {
	SourceEntityID string          `json:"source_entity_id"`
	TargetEntityID string          `json:"target_entity_id"`
	TotalCount     int             `json:"total_count"`
	PositiveCount  int             `json:"positive_count"`
	NeutralCount   int             `json:"neutral_count"`
	NegativeCount  int             `json:"negative_count"`
	NetSentiment   float64         `json:"net_sentiment"`
	Procedural     bool            `json:"is_procedural"`
	Mentions       []MentionDetail `json:"mentions,omitempty"`
}

// recomputeSentiment derives net sentiment from the current counts.
func (e *EdgeRecord) recomputeSentiment() {
	if e.TotalCount == 0 {
		e.NetSentiment = 0
		return
	}
	e.NetSentiment = float64(e.PositiveCount-e.NegativeCount) / float64(e.TotalCount)
}

// NodeMetrics holds the per-node centrality scores and role labels.
type NodeMetrics struct {
	EntityID        string               `json:"entity_id"`
	DisplayName     string               `json:"display_name"`
	Affiliation     registry.Affiliation `json:"affiliation,omitempty"`
	Category        registry.Category    `json:"category,omitempty"`
	InDegree        int                  `json:"in_degree"`
	OutDegree       int                  `json:"out_degree"`
	Betweenness     float64              `json:"betweenness"`
	Eigenvector     float64              `json:"eigenvector"`
	Closeness       float64              `json:"closeness"`
	StructuralRoles []StructuralRole     `json:"structural_roles"`
	CommunityID     *int                 `json:"community_id,omitempty"`
}

// HasRole reports whether the node carries the given role label.
func (n NodeMetrics) HasRole(role StructuralRole) bool {
	for _, r := range n.StructuralRoles {
		if r == role {
			return true
		}
	}
	return false
}

// SessionGraph is the complete interaction graph for one session, or
// for a merged set of sessions when produced by the aggregator.
type SessionGraph struct {
	SessionID       string           `json:"session_id"`
	Date            registry.ISODate `json:"date,omitempty"`
	Nodes           []NodeMetrics    `json:"nodes"`
	Edges           []EdgeRecord     `json:"edges"`
	NodeCount       int              `json:"node_count"`
	EdgeCount       int              `json:"edge_count"`
	ModularityScore *float64         `json:"modularity_score,omitempty"`
}

// PoliticalEdges returns the edges with presiding-officer interactions
// excluded. Centrality and roles are computed over this subset.
func (g *SessionGraph) PoliticalEdges() []EdgeRecord {
	var out []EdgeRecord
	for _, e := range g.Edges {
		if !e.Procedural {
			out = append(out, e)
		}
	}
	return out
}

// ProceduralEdges returns only the presiding-officer interactions, for
// procedural analysis or a dashboard toggle.
func (g *SessionGraph) ProceduralEdges() []EdgeRecord {
	var out []EdgeRecord
	for _, e := range g.Edges {
		if e.Procedural {
			out = append(out, e)
		}
	}
	return out
}

// Node returns the metrics for an entity, or nil when the entity does
// not appear in the graph.
func (g *SessionGraph) Node(entityID string) *NodeMetrics {
	for i := range g.Nodes {
		if g.Nodes[i].EntityID == entityID {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Edge returns the aggregated edge between two entities, or nil.
func (g *SessionGraph) Edge(source, target string) *EdgeRecord {
	for i := range g.Edges {
		if g.Edges[i].SourceEntityID == source && g.Edges[i].TargetEntityID == target {
			return &g.Edges[i]
		}
	}
	return nil
}
