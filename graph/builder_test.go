package graph_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caribdigital/graphhansard/config"
	"github.com/caribdigital/graphhansard/graph"
	"github.com/caribdigital/graphhansard/mention"
	"github.com/caribdigital/graphhansard/resolver"
	"github.com/caribdigital/graphhansard/testutil"
)

func newBuilder(t *testing.T, opts ...graph.Option) *graph.Builder {
	t.Helper()
	return graph.NewBuilder(testutil.SampleRegistry(), config.Default().Graph, opts...)
}

func rec(source, target string, sentiment mention.SentimentLabel, start float64) mention.Record {
	return mention.Record{
		SessionID:            "s1",
		SourceEntityID:       source,
		TargetEntityID:       target,
		RawText:              "the member",
		ResolutionMethod:     resolver.MethodExact,
		ResolutionConfidence: 1.0,
		Sentiment:            sentiment,
		StartTime:            start,
		EndTime:              start + 5,
	}
}

func TestBuildSessionGraphAggregation(t *testing.T) {
	b := newBuilder(t)

	mentions := []mention.Record{
		rec("mp_pintard_michael", "mp_davis_brave", mention.SentimentNegative, 10),
		rec("mp_pintard_michael", "mp_davis_brave", mention.SentimentPositive, 20),
		rec("mp_pintard_michael", "mp_davis_brave", mention.SentimentNeutral, 30),
		rec("mp_cooper_chester", "mp_davis_brave", mention.SentimentPositive, 40),
	}

	g := b.BuildSessionGraph(mentions, "house_2023_10_04", "2023-10-04")
	assert.Equal(t, "house_2023_10_04", g.SessionID)
	assert.Equal(t, 3, g.NodeCount)
	assert.Equal(t, 2, g.EdgeCount)

	e := g.Edge("mp_pintard_michael", "mp_davis_brave")
	require.NotNil(t, e)
	assert.Equal(t, 3, e.TotalCount)
	assert.Equal(t, 1, e.PositiveCount)
	assert.Equal(t, 1, e.NeutralCount)
	assert.Equal(t, 1, e.NegativeCount)
	assert.InDelta(t, 0.0, e.NetSentiment, 1e-9)
	assert.Len(t, e.Mentions, 3)
	assert.Equal(t, 10.0, e.Mentions[0].StartTime, "mention details ordered by time")

	davis := g.Node("mp_davis_brave")
	require.NotNil(t, davis)
	assert.Equal(t, 2, davis.InDegree)
	assert.Equal(t, 0, davis.OutDegree)
	assert.Equal(t, "Brave Davis", davis.DisplayName)
}

func TestBuildSessionGraphFiltersUnusableRecords(t *testing.T) {
	b := newBuilder(t)

	unresolved := rec("mp_pintard_michael", "", "", 5)
	unresolved.ResolutionMethod = resolver.MethodUnresolved
	unresolved.ResolutionConfidence = 0

	self := rec("mp_davis_brave", "mp_davis_brave", mention.SentimentNeutral, 8)
	self.IsSelfReference = true

	g := b.BuildSessionGraph([]mention.Record{
		unresolved,
		self,
		rec("mp_pintard_michael", "mp_davis_brave", mention.SentimentNeutral, 12),
	}, "s1", "2023-10-04")

	assert.Equal(t, 1, g.EdgeCount, "unresolved and self-reference records produce no edges")
	assert.Nil(t, g.Edge("mp_davis_brave", "mp_davis_brave"))
}

func TestBuildSessionGraphProceduralEdges(t *testing.T) {
	b := newBuilder(t)

	g := b.BuildSessionGraph([]mention.Record{
		rec("mp_pintard_michael", "mp_deveaux_patricia", mention.SentimentNeutral, 5),
		rec("mp_pintard_michael", "mp_davis_brave", mention.SentimentNeutral, 10),
	}, "s1", "2023-10-04")

	speakerEdge := g.Edge("mp_pintard_michael", "mp_deveaux_patricia")
	require.NotNil(t, speakerEdge)
	assert.True(t, speakerEdge.Procedural, "presiding-officer edge is procedural")

	assert.Len(t, g.PoliticalEdges(), 1)
	assert.Len(t, g.ProceduralEdges(), 1)

	// The presiding officer has no political degree and is isolated in
	// the political graph
	speaker := g.Node("mp_deveaux_patricia")
	require.NotNil(t, speaker)
	assert.Equal(t, 0, speaker.InDegree)
	assert.Equal(t, []graph.StructuralRole{graph.RoleIsolated}, speaker.StructuralRoles)
}

func TestBuildSessionGraphEmptyInput(t *testing.T) {
	b := newBuilder(t)

	g := b.BuildSessionGraph(nil, "s1", "2023-10-04")
	assert.Equal(t, 0, g.NodeCount)
	assert.Equal(t, 0, g.EdgeCount)
	assert.Nil(t, g.ModularityScore)
}

func TestBuildSessionGraphSingleEdge(t *testing.T) {
	b := newBuilder(t)

	g := b.BuildSessionGraph([]mention.Record{
		rec("mp_pintard_michael", "mp_davis_brave", mention.SentimentPositive, 5),
	}, "s1", "2023-10-04")

	require.Equal(t, 2, g.NodeCount)
	for _, n := range g.Nodes {
		assert.Equal(t, 0.0, n.Betweenness, "degenerate graph defaults to zero, never panics")
	}
	assert.Nil(t, g.Nodes[0].CommunityID, "too few nodes for community detection")
}

func TestBuildSessionGraphDeterministic(t *testing.T) {
	b := newBuilder(t)

	mentions := []mention.Record{
		rec("mp_pintard_michael", "mp_davis_brave", mention.SentimentNegative, 10),
		rec("mp_davis_brave", "mp_pintard_michael", mention.SentimentNegative, 20),
		rec("mp_cooper_chester", "mp_pintard_michael", mention.SentimentNeutral, 30),
		rec("mp_thompson_kwasi", "mp_cooper_chester", mention.SentimentPositive, 40),
		rec("mp_cooper_chester", "mp_davis_brave", mention.SentimentPositive, 50),
	}

	first := b.BuildSessionGraph(mentions, "s1", "2023-10-04")
	for i := 0; i < 5; i++ {
		again := b.BuildSessionGraph(mentions, "s1", "2023-10-04")
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("graph build not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestBuildSessionGraphCommunityAssignment(t *testing.T) {
	b := newBuilder(t)

	// Two tight pairs loosely connected: enough nodes to attempt
	// detection
	mentions := []mention.Record{
		rec("mp_pintard_michael", "mp_thompson_kwasi", mention.SentimentPositive, 1),
		rec("mp_thompson_kwasi", "mp_pintard_michael", mention.SentimentPositive, 2),
		rec("mp_davis_brave", "mp_cooper_chester", mention.SentimentPositive, 3),
		rec("mp_cooper_chester", "mp_davis_brave", mention.SentimentPositive, 4),
		rec("mp_pintard_michael", "mp_davis_brave", mention.SentimentNegative, 5),
	}

	g := b.BuildSessionGraph(mentions, "s1", "2023-10-04")
	require.Equal(t, 4, g.NodeCount)
	for _, n := range g.Nodes {
		require.NotNil(t, n.CommunityID, "every node gets a community id")
	}
	assert.NotNil(t, g.ModularityScore)
}
