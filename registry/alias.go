package registry

import (
	"sort"
	"strings"
)

// honorifics are leading tokens carrying no identifying information.
// They are stripped during normalization so "the Honourable Brave Davis"
// and "Brave Davis" index identically.
var honorifics = map[string]bool{
	"honourable": true,
	"honorable":  true,
	"hon":        true,
	"mr":         true,
	"mrs":        true,
	"ms":         true,
	"madam":      true,
	"sir":        true,
	"dr":         true,
	"rev":        true,
}

// Normalize canonicalizes alias text for matching: lowercase, trimmed,
// whitespace collapsed, with leading articles and honorific tokens removed.
func Normalize(s string) string {
	fields := strings.Fields(strings.ToLower(s))

	start := 0
	for start < len(fields) {
		tok := strings.Trim(fields[start], ".,;:!?'\"")
		if tok == "the" || honorifics[tok] {
			start++
			continue
		}
		break
	}

	out := make([]string, 0, len(fields)-start)
	for _, f := range fields[start:] {
		tok := strings.Trim(f, ".,;:!?'\"")
		if tok != "" {
			out = append(out, tok)
		}
	}
	return strings.Join(out, " ")
}

// Window is the validity period an alias inherits from its source role
// tenure, half-open as [Start, End). An empty End means open.
type Window struct {
	Start ISODate `json:"start"`
	End   ISODate `json:"end,omitempty"`
}

// Contains reports whether the window covers the given date. A zero date
// is considered covered, so with no reference date every temporal
// candidate stays valid.
func (w Window) Contains(d ISODate) bool {
	if d.IsZero() {
		return true
	}
	if d.Before(w.Start) {
		return false
	}
	if w.End.IsZero() {
		return true
	}
	return d.Before(w.End)
}

// Candidate is one entity a normalized alias may refer to. A nil Window
// means the alias is globally valid for that entity.
type Candidate struct {
	EntityID string  `json:"entity_id"`
	Window   *Window `json:"window,omitempty"`
}

// ValidOn reports whether the candidate is valid on the given date.
func (c Candidate) ValidOn(d ISODate) bool {
	return c.Window == nil || c.Window.Contains(d)
}

// AliasIndex is the derived inverted index from normalized alias text to
// candidate entities. It is immutable once built and safe for unbounded
// concurrent lookups.
type AliasIndex struct {
	version    string
	entries    map[string][]Candidate
	collisions map[string]CollisionRecord
}

// BuildAliasIndex derives the alias index from a registry. Construction is
// deterministic: the same registry always yields an identical index.
func BuildAliasIndex(reg *Registry) *AliasIndex {
	ix := &AliasIndex{
		version:    reg.Version(),
		entries:    make(map[string][]Candidate),
		collisions: make(map[string]CollisionRecord, len(reg.Collisions)),
	}

	for i := range reg.Entities {
		e := &reg.Entities[i]
		for _, ga := range generateAliases(e) {
			ix.insert(ga.normalized, Candidate{EntityID: e.ID, Window: ga.window})
		}
	}

	// Candidate ordering is the documented resolution order: lexicographic
	// entity id, then earliest window start.
	for alias := range ix.entries {
		cands := ix.entries[alias]
		sort.Slice(cands, func(i, j int) bool {
			if cands[i].EntityID != cands[j].EntityID {
				return cands[i].EntityID < cands[j].EntityID
			}
			return windowStart(cands[i]) < windowStart(cands[j])
		})
	}

	for _, c := range reg.Collisions {
		ix.collisions[Normalize(c.Alias)] = c
	}

	return ix
}

// Version returns the registry version the index was built from.
func (ix *AliasIndex) Version() string {
	return ix.version
}

// Lookup returns the candidates for a normalized alias, in resolution order.
func (ix *AliasIndex) Lookup(normalized string) []Candidate {
	return ix.entries[normalized]
}

// KnownCollision returns the curated collision record for a normalized
// alias, if the registry documents one.
func (ix *AliasIndex) KnownCollision(normalized string) (CollisionRecord, bool) {
	c, ok := ix.collisions[normalized]
	return c, ok
}

// Aliases returns every indexed alias in sorted order.
func (ix *AliasIndex) Aliases() []string {
	out := make([]string, 0, len(ix.entries))
	for alias := range ix.entries {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}

// Export returns the index as a plain alias -> entity-id map for
// serialization. Candidate order is preserved; duplicate entity ids from
// multiple windows are collapsed.
func (ix *AliasIndex) Export() map[string][]string {
	out := make(map[string][]string, len(ix.entries))
	for alias, cands := range ix.entries {
		seen := make(map[string]bool, len(cands))
		ids := make([]string, 0, len(cands))
		for _, c := range cands {
			if !seen[c.EntityID] {
				seen[c.EntityID] = true
				ids = append(ids, c.EntityID)
			}
		}
		out[alias] = ids
	}
	return out
}

// CollisionAliases returns the sorted aliases that currently map to more
// than one entity.
func (ix *AliasIndex) CollisionAliases() []string {
	var out []string
	for alias, cands := range ix.entries {
		distinct := make(map[string]bool)
		for _, c := range cands {
			distinct[c.EntityID] = true
		}
		if len(distinct) > 1 {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

func (ix *AliasIndex) insert(normalized string, cand Candidate) {
	if normalized == "" {
		return
	}

	existing := ix.entries[normalized]
	for i, prev := range existing {
		if prev.EntityID != cand.EntityID {
			continue
		}
		// A globally valid alias subsumes any windowed form of itself
		if prev.Window == nil {
			return
		}
		if cand.Window == nil {
			existing[i] = cand
			return
		}
		if *prev.Window == *cand.Window {
			return
		}
	}
	ix.entries[normalized] = append(existing, cand)
}

type generatedAlias struct {
	normalized string
	window     *Window
}

// generateAliases produces every rule-based alias for an entity, in a
// fixed order: names, constituency reference, role-tenure titles, then
// manual aliases. Manual aliases are globally valid.
func generateAliases(e *Entity) []generatedAlias {
	var out []generatedAlias

	add := func(raw string, w *Window) {
		if n := Normalize(raw); n != "" {
			out = append(out, generatedAlias{normalized: n, window: w})
		}
	}

	add(e.CommonName, nil)
	add(e.LegalName, nil)

	if e.Constituency != "" {
		add("Member for "+e.Constituency, nil)
	}

	for _, rt := range e.RoleTenures {
		w := &Window{Start: rt.StartDate, End: rt.EndDate}
		add(rt.Title, w)
		if rt.ShortTitle != "" {
			add(rt.ShortTitle, w)
		}
	}

	for _, alias := range e.ManualAliases {
		add(alias, nil)
	}

	return out
}

func windowStart(c Candidate) string {
	if c.Window == nil {
		return ""
	}
	return string(c.Window.Start)
}
