package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caribdigital/graphhansard/config"
)

func edge(source, target string, count int) EdgeRecord {
	return EdgeRecord{SourceEntityID: source, TargetEntityID: target, TotalCount: count}
}

func TestBetweennessPath(t *testing.T) {
	// a -> b -> c: b sits on the only path between a and c
	a := newAdjacency([]string{"a", "b", "c"}, []EdgeRecord{
		edge("a", "b", 1),
		edge("b", "c", 1),
	})

	scores := a.betweenness()
	assert.InDelta(t, 0.0, scores[0], 1e-9)
	assert.InDelta(t, 0.5, scores[1], 1e-9, "one of two ordered pairs routes through b")
	assert.InDelta(t, 0.0, scores[2], 1e-9)
}

func TestBetweennessDegenerateGraphs(t *testing.T) {
	assert.Equal(t, []float64{}, newAdjacency([]string{}, nil).betweenness())
	assert.Equal(t, []float64{0}, newAdjacency([]string{"a"}, nil).betweenness())
	assert.Equal(t, []float64{0, 0}, newAdjacency([]string{"a", "b"}, []EdgeRecord{edge("a", "b", 1)}).betweenness())
}

func TestEigenvectorCycle(t *testing.T) {
	// Symmetric cycle: all nodes score equally
	a := newAdjacency([]string{"a", "b", "c"}, []EdgeRecord{
		edge("a", "b", 1),
		edge("b", "c", 1),
		edge("c", "a", 1),
	})

	scores := a.eigenvector(config.Default().Graph.Eigenvector)
	want := 1.0 / math.Sqrt(3)
	for i, s := range scores {
		assert.InDelta(t, want, s, 1e-4, "node %d", i)
	}
}

func TestEigenvectorWeightedStar(t *testing.T) {
	// Everyone references d; mutual back-edges keep the iteration from
	// collapsing. d must come out on top.
	a := newAdjacency([]string{"a", "b", "c", "d"}, []EdgeRecord{
		edge("a", "d", 5),
		edge("b", "d", 3),
		edge("c", "d", 2),
		edge("d", "a", 1),
		edge("d", "b", 1),
		edge("d", "c", 1),
	})

	scores := a.eigenvector(config.Default().Graph.Eigenvector)
	require.Len(t, scores, 4)
	for i := 0; i < 3; i++ {
		assert.Greater(t, scores[3], scores[i], "hub outranks spoke %d", i)
	}
}

func TestEigenvectorNoEdges(t *testing.T) {
	a := newAdjacency([]string{"a", "b"}, nil)
	assert.Equal(t, []float64{0, 0}, a.eigenvector(config.Default().Graph.Eigenvector))
}

func TestClosenessPath(t *testing.T) {
	a := newAdjacency([]string{"a", "b", "c"}, []EdgeRecord{
		edge("a", "b", 1),
		edge("b", "c", 1),
	})

	scores := a.closeness()
	// a reaches b at distance 1 and c at distance 2
	assert.InDelta(t, (2.0/2.0)*(2.0/3.0), scores[0], 1e-9)
	// b reaches only c
	assert.InDelta(t, (1.0/2.0)*(1.0/1.0), scores[1], 1e-9)
	// c reaches nothing
	assert.InDelta(t, 0.0, scores[2], 1e-9)
}

func TestCommunityDetectionSplitsClusters(t *testing.T) {
	// Two triangles joined by one weak link
	edges := []EdgeRecord{
		edge("a", "b", 5), edge("b", "c", 5), edge("c", "a", 5),
		edge("x", "y", 5), edge("y", "z", 5), edge("z", "x", 5),
		edge("c", "x", 1),
	}
	a := newAdjacency([]string{"a", "b", "c", "x", "y", "z"}, edges)

	assignments, q := detectCommunities(a, config.Default().Graph.Community)
	require.NotNil(t, assignments)
	require.NotNil(t, q)

	assert.Equal(t, assignments[0], assignments[1])
	assert.Equal(t, assignments[1], assignments[2])
	assert.Equal(t, assignments[3], assignments[4])
	assert.Equal(t, assignments[4], assignments[5])
	assert.NotEqual(t, assignments[0], assignments[3], "triangles separate")
	assert.Greater(t, *q, 0.0)
}

func TestCommunityDetectionDeterministic(t *testing.T) {
	edges := []EdgeRecord{
		edge("a", "b", 2), edge("b", "c", 2), edge("c", "d", 1),
		edge("d", "e", 2), edge("e", "f", 2), edge("f", "d", 2),
	}
	a := newAdjacency([]string{"a", "b", "c", "d", "e", "f"}, edges)

	first, _ := detectCommunities(a, config.Default().Graph.Community)
	for i := 0; i < 10; i++ {
		again, _ := detectCommunities(a, config.Default().Graph.Community)
		assert.Equal(t, first, again)
	}
}

func TestCommunityDetectionSkipsSmallGraphs(t *testing.T) {
	a := newAdjacency([]string{"a", "b", "c"}, []EdgeRecord{edge("a", "b", 1)})

	assignments, q := detectCommunities(a, config.Default().Graph.Community)
	assert.Nil(t, assignments, "below min_nodes")
	assert.Nil(t, q)
}

func TestCommunityDetectionDisabled(t *testing.T) {
	cfg := config.Default().Graph.Community
	cfg.Enabled = false
	a := newAdjacency([]string{"a", "b", "c", "d"}, []EdgeRecord{edge("a", "b", 1)})

	assignments, _ := detectCommunities(a, cfg)
	assert.Nil(t, assignments)
}

func TestPercentileNearestRank(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.Equal(t, 8.0, percentile(values, 75))
	assert.Equal(t, 9.0, percentile(values, 90))
	assert.Equal(t, 1.0, percentile(values, 0))
	assert.Equal(t, 10.0, percentile(values, 100))
	assert.Equal(t, 5.0, percentile([]float64{5}, 50))
}

func TestAssignRolesIsolatedExclusive(t *testing.T) {
	nodes := []NodeMetrics{
		{EntityID: "a", InDegree: 3, OutDegree: 1, Eigenvector: 0.9, Betweenness: 0.5},
		{EntityID: "b", InDegree: 0, OutDegree: 0, Eigenvector: 0.9, Betweenness: 0.5},
	}
	assignRoles(nodes, config.Default().Graph.Roles)

	assert.Equal(t, []StructuralRole{RoleIsolated}, nodes[1].StructuralRoles,
		"zero-degree node carries exactly isolated")
	assert.NotContains(t, nodes[0].StructuralRoles, RoleIsolated)
}

func TestAssignRolesThresholds(t *testing.T) {
	nodes := []NodeMetrics{
		{EntityID: "a", InDegree: 10, OutDegree: 2, Eigenvector: 0.9, Betweenness: 0.6},
		{EntityID: "b", InDegree: 1, OutDegree: 2, Eigenvector: 0.1, Betweenness: 0.0},
		{EntityID: "c", InDegree: 1, OutDegree: 2, Eigenvector: 0.1, Betweenness: 0.0},
		{EntityID: "d", InDegree: 1, OutDegree: 2, Eigenvector: 0.1, Betweenness: 0.0},
	}
	assignRoles(nodes, config.Default().Graph.Roles)

	assert.Contains(t, nodes[0].StructuralRoles, RoleForceMultiplier)
	assert.Contains(t, nodes[0].StructuralRoles, RoleBridge)
	assert.Contains(t, nodes[0].StructuralRoles, RoleHub)
	for _, n := range nodes[1:] {
		assert.NotContains(t, n.StructuralRoles, RoleHub)
		assert.NotContains(t, n.StructuralRoles, RoleBridge)
	}
}

func TestAssignRolesAllZeroMetricsLabelNothing(t *testing.T) {
	nodes := []NodeMetrics{
		{EntityID: "a", InDegree: 0, OutDegree: 1},
		{EntityID: "b", InDegree: 1, OutDegree: 0},
	}
	assignRoles(nodes, config.Default().Graph.Roles)

	assert.NotContains(t, nodes[0].StructuralRoles, RoleForceMultiplier)
	assert.NotContains(t, nodes[0].StructuralRoles, RoleBridge)
	assert.NotContains(t, nodes[0].StructuralRoles, RoleIsolated)
}
