package registry_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caribdigital/graphhansard/registry"
	"github.com/caribdigital/graphhansard/testutil"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Brave Davis", "brave davis"},
		{"  Brave   Davis  ", "brave davis"},
		{"The Honourable Brave Davis", "brave davis"},
		{"Hon. Chester Cooper", "chester cooper"},
		{"the Member for Cat Island", "member for cat island"},
		{"Madam Speaker", "speaker"},
		{"Dr. Hubert Minnis", "hubert minnis"},
		{"MINISTER OF WORKS", "minister of works"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, registry.Normalize(tt.in), "input %q", tt.in)
	}
}

func TestBuildAliasIndexGeneratedForms(t *testing.T) {
	ix := testutil.SampleIndex()

	// Common and legal names
	cands := ix.Lookup("brave davis")
	require.Len(t, cands, 1)
	assert.Equal(t, "mp_davis_brave", cands[0].EntityID)
	assert.Nil(t, cands[0].Window, "name aliases are globally valid")

	cands = ix.Lookup("philip edward davis")
	require.Len(t, cands, 1)
	assert.Equal(t, "mp_davis_brave", cands[0].EntityID)

	// Constituency reference
	cands = ix.Lookup("member for marco city")
	require.Len(t, cands, 1)
	assert.Equal(t, "mp_pintard_michael", cands[0].EntityID)

	// Role title inherits the tenure window
	cands = ix.Lookup("prime minister")
	require.Len(t, cands, 1)
	require.NotNil(t, cands[0].Window)
	assert.Equal(t, registry.ISODate("2021-09-17"), cands[0].Window.Start)
	assert.True(t, cands[0].Window.End.IsZero())

	// Short titles are indexed too
	cands = ix.Lookup("pm")
	require.Len(t, cands, 1)
	assert.Equal(t, "mp_davis_brave", cands[0].EntityID)

	// Manual aliases are globally valid
	cands = ix.Lookup("brave")
	require.Len(t, cands, 1)
	assert.Nil(t, cands[0].Window)
}

func TestAliasIndexTemporalWindows(t *testing.T) {
	ix := testutil.SampleIndex()

	cands := ix.Lookup("minister of works")
	require.Len(t, cands, 2)

	var valid []string
	for _, c := range cands {
		if c.ValidOn("2023-08-01") {
			valid = append(valid, c.EntityID)
		}
	}
	assert.Equal(t, []string{"mp_sears_alfred"}, valid)

	valid = nil
	for _, c := range cands {
		if c.ValidOn("2023-10-01") {
			valid = append(valid, c.EntityID)
		}
	}
	assert.Equal(t, []string{"mp_sweeting_clay"}, valid)

	// Reshuffle day belongs to the incoming minister: [start, end)
	valid = nil
	for _, c := range cands {
		if c.ValidOn("2023-09-03") {
			valid = append(valid, c.EntityID)
		}
	}
	assert.Equal(t, []string{"mp_sweeting_clay"}, valid)
}

func TestAliasIndexCollisions(t *testing.T) {
	ix := testutil.SampleIndex()

	cands := ix.Lookup("doc")
	require.Len(t, cands, 2)
	// Documented resolution order: lexicographic entity id
	assert.Equal(t, "mp_darville_michael", cands[0].EntityID)
	assert.Equal(t, "mp_minnis_hubert", cands[1].EntityID)

	rec, ok := ix.KnownCollision("doc")
	require.True(t, ok)
	assert.Contains(t, rec.ResolutionStrategy, "claimants")

	collisions := ix.CollisionAliases()
	assert.Contains(t, collisions, "doc")
	assert.Contains(t, collisions, "minister of works")
}

func TestAliasIndexDeterministic(t *testing.T) {
	reg := testutil.SampleRegistry()

	first := registry.BuildAliasIndex(reg)
	second := registry.BuildAliasIndex(reg)

	if diff := cmp.Diff(first.Export(), second.Export()); diff != "" {
		t.Fatalf("alias index not deterministic (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.Aliases(), second.Aliases())

	// Serialized form is byte-identical across rebuilds
	a, err := json.Marshal(first.Export())
	require.NoError(t, err)
	b, err := json.Marshal(second.Export())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAliasIndexVersion(t *testing.T) {
	ix := testutil.SampleIndex()
	assert.Equal(t, "2021-parliament-v3", ix.Version())
}

func TestLookupUnknownAlias(t *testing.T) {
	ix := testutil.SampleIndex()
	assert.Empty(t, ix.Lookup("zaphod beeblebrox"))
}
