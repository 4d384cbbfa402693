package mention_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caribdigital/graphhansard/config"
	"github.com/caribdigital/graphhansard/mention"
	"github.com/caribdigital/graphhansard/metric"
	"github.com/caribdigital/graphhansard/registry"
	"github.com/caribdigital/graphhansard/resolver"
	"github.com/caribdigital/graphhansard/testutil"
)

func newExtractor(t *testing.T, opts ...mention.Option) *mention.Extractor {
	t.Helper()
	reg := testutil.SampleRegistry()
	res := resolver.New(registry.BuildAliasIndex(reg), config.Default().Resolver)
	return mention.NewExtractor(reg, res, config.Default().Extractor, opts...)
}

func TestExtractResolvedMention(t *testing.T) {
	x := newExtractor(t)

	records, unresolved := x.Extract("house_2023_10_04", []mention.Segment{
		{
			SpeakerEntityID: "mp_pintard_michael",
			StartTime:       10.0,
			EndTime:         24.5,
			Text:            "I thank the Prime Minister for his statement.",
		},
	}, "2023-10-04")

	require.Len(t, records, 1)
	assert.Empty(t, unresolved)

	rec := records[0]
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "house_2023_10_04", rec.SessionID)
	assert.Equal(t, "mp_pintard_michael", rec.SourceEntityID)
	assert.Equal(t, "mp_davis_brave", rec.TargetEntityID)
	assert.Equal(t, "the Prime Minister", rec.RawText)
	assert.Equal(t, resolver.MethodExact, rec.ResolutionMethod)
	assert.Equal(t, 1.0, rec.ResolutionConfidence)
	assert.Equal(t, 10.0, rec.StartTime)
	assert.Equal(t, 24.5, rec.EndTime)
	assert.Equal(t, 0, rec.SegmentIndex)
	assert.False(t, rec.IsSelfReference)
}

func TestExtractSelfReference(t *testing.T) {
	x := newExtractor(t)

	records, _ := x.Extract("s1", []mention.Segment{
		{
			SpeakerEntityID: "mp_davis_brave",
			StartTime:       0,
			EndTime:         5,
			Text:            "As Prime Minister I take full responsibility.",
		},
	}, "2023-10-04")

	require.Len(t, records, 1)
	assert.Equal(t, "mp_davis_brave", records[0].TargetEntityID)
	assert.True(t, records[0].IsSelfReference)
}

func TestExtractDeicticUsesSpeakerHistory(t *testing.T) {
	x := newExtractor(t)

	records, _ := x.Extract("s1", []mention.Segment{
		{
			SpeakerEntityID: "mp_cooper_chester",
			StartTime:       0,
			EndTime:         10,
			Text:            "The tourism numbers speak for themselves.",
		},
		{
			SpeakerEntityID: "mp_pintard_michael",
			StartTime:       11,
			EndTime:         20,
			Text:            "The Member who just spoke is mistaken.",
		},
	}, "2023-10-04")

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "mp_pintard_michael", rec.SourceEntityID)
	assert.Equal(t, "mp_cooper_chester", rec.TargetEntityID)
	assert.Equal(t, resolver.MethodCoreference, rec.ResolutionMethod)
	assert.Equal(t, 1, rec.SegmentIndex)
}

func TestExtractOppositePartyDeictic(t *testing.T) {
	x := newExtractor(t)

	records, _ := x.Extract("s1", []mention.Segment{
		{SpeakerEntityID: "mp_thompson_kwasi", StartTime: 0, EndTime: 5, Text: "The numbers do not add up."},
		{SpeakerEntityID: "mp_cooper_chester", StartTime: 6, EndTime: 12, Text: "They add up fine."},
		{SpeakerEntityID: "mp_davis_brave", StartTime: 13, EndTime: 20, Text: "The Member opposite should check the record."},
	}, "2023-10-04")

	require.Len(t, records, 1)
	assert.Equal(t, "mp_thompson_kwasi", records[0].TargetEntityID,
		"opposite-party deictic skips the same-party turn")
}

func TestExtractSkipsMalformedSegments(t *testing.T) {
	reg := metric.NewMetricsRegistry()
	x := newExtractor(t, mention.WithMetrics(reg.CoreMetrics()))

	records, _ := x.Extract("s1", []mention.Segment{
		{SpeakerEntityID: "mp_davis_brave", StartTime: 0, EndTime: 5, Text: "   "},
		{SpeakerEntityID: "mp_davis_brave", StartTime: 10, EndTime: 5, Text: "The Member for Exuma agrees."},
		{SpeakerEntityID: "mp_pintard_michael", StartTime: 20, EndTime: 30, Text: "I thank the Prime Minister."},
	}, "2023-10-04")

	require.Len(t, records, 1, "malformed segments skipped, extraction continues")
	assert.Equal(t, 2, records[0].SegmentIndex)

	families, err := reg.PrometheusRegistry().Gather()
	require.NoError(t, err)
	var skipped float64
	for _, mf := range families {
		if mf.GetName() == "graphhansard_extractor_segments_skipped_total" {
			skipped = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.Equal(t, 2.0, skipped)
}

func TestExtractUnresolvedLogged(t *testing.T) {
	x := newExtractor(t)

	records, unresolved := x.Extract("s1", []mention.Segment{
		{
			SpeakerEntityID: "mp_davis_brave",
			StartTime:       42.0,
			EndTime:         50.0,
			Text:            "I yield the floor to Mr. Zebulon Quackenbush today.",
		},
	}, "2023-10-04")

	require.Len(t, records, 1)
	assert.False(t, records[0].Resolved())
	assert.Equal(t, resolver.MethodUnresolved, records[0].ResolutionMethod)
	assert.Equal(t, 0.0, records[0].ResolutionConfidence)

	require.Len(t, unresolved, 1)
	assert.Equal(t, "Mr. Zebulon Quackenbush", unresolved[0].RawText)
	assert.Equal(t, "s1", unresolved[0].SessionID)
	assert.Equal(t, 42.0, unresolved[0].Timestamp)
	assert.NotEmpty(t, unresolved[0].ContextWindow)
}

func TestExtractContextWindow(t *testing.T) {
	x := newExtractor(t)

	records, _ := x.Extract("s1", []mention.Segment{
		{
			SpeakerEntityID: "mp_pintard_michael",
			StartTime:       0,
			EndTime:         30,
			Text: "The budget debate continues. Roads remain unfinished. " +
				"I thank the Prime Minister for his candour. " +
				"We will hold him to it. The vote comes Thursday.",
		},
	}, "2023-10-04")

	require.Len(t, records, 1)
	ctx := records[0].ContextWindow
	assert.Contains(t, ctx, "Roads remain unfinished.")
	assert.Contains(t, ctx, "I thank the Prime Minister for his candour.")
	assert.Contains(t, ctx, "We will hold him to it.")
	assert.NotContains(t, ctx, "The budget debate continues.")
	assert.NotContains(t, ctx, "The vote comes Thursday.")
}

func TestExtractTemporalResolution(t *testing.T) {
	x := newExtractor(t)

	seg := []mention.Segment{{
		SpeakerEntityID: "mp_pintard_michael",
		StartTime:       0,
		EndTime:         10,
		Text:            "The Minister of Works must answer for this.",
	}}

	before, _ := x.Extract("s_before", seg, "2023-08-01")
	require.Len(t, before, 1)
	assert.Equal(t, "mp_sears_alfred", before[0].TargetEntityID)

	after, _ := x.Extract("s_after", seg, "2023-10-01")
	require.Len(t, after, 1)
	assert.Equal(t, "mp_sweeting_clay", after[0].TargetEntityID)
}

func TestExtractDialectText(t *testing.T) {
	x := newExtractor(t)

	records, _ := x.Extract("s1", []mention.Segment{
		{
			SpeakerEntityID: "mp_thompson_kwasi",
			StartTime:       0,
			EndTime:         8,
			Text:            "Da Memba for Cat Island know dis ain't right.",
		},
	}, "2023-10-04")

	require.Len(t, records, 1)
	assert.Equal(t, "mp_davis_brave", records[0].TargetEntityID)
	assert.Equal(t, "Da Memba for Cat Island", records[0].RawText)
}

func TestExtractConsecutiveTurnsCollapse(t *testing.T) {
	x := newExtractor(t)

	// Two consecutive segments by the same speaker form one turn, so the
	// deictic reference reaches past both to the earlier speaker.
	records, _ := x.Extract("s1", []mention.Segment{
		{SpeakerEntityID: "mp_cooper_chester", StartTime: 0, EndTime: 5, Text: "First point."},
		{SpeakerEntityID: "mp_pintard_michael", StartTime: 6, EndTime: 10, Text: "I object."},
		{SpeakerEntityID: "mp_pintard_michael", StartTime: 11, EndTime: 15, Text: "I object again."},
		{SpeakerEntityID: "mp_pintard_michael", StartTime: 16, EndTime: 25, Text: "The previous speaker had no answer."},
	}, "2023-10-04")

	require.Len(t, records, 1)
	assert.Equal(t, "mp_cooper_chester", records[0].TargetEntityID)
}
