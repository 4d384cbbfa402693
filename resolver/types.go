// Package resolver resolves raw mention text to canonical entity ids via a
// strict cascade: exact match, fuzzy match, coreference, unresolved. A
// Resolver is a pure function of (alias index snapshot, input) and is safe
// for unbounded concurrent use.
package resolver

import (
	"github.com/caribdigital/graphhansard/registry"
)

// Method identifies which cascade stage produced a resolution.
type Method string

const (
	// MethodExact is a normalized exact hit in the alias index.
	MethodExact Method = "exact"

	// MethodFuzzy is a token-sort similarity match above the configured
	// threshold.
	MethodFuzzy Method = "fuzzy"

	// MethodCoreference is a deictic reference resolved from speaker
	// context.
	MethodCoreference Method = "coreference"

	// MethodUnresolved means every stage failed. Not an error condition;
	// the caller logs it for review.
	MethodUnresolved Method = "unresolved"
)

// String returns the string representation of the Method.
func (m Method) String() string {
	return string(m)
}

// IsValid checks if the Method is one of the defined constants.
func (m Method) IsValid() bool {
	switch m {
	case MethodExact, MethodFuzzy, MethodCoreference, MethodUnresolved:
		return true
	default:
		return false
	}
}

// Result is the outcome of one resolution attempt. EntityID is empty when
// Method is MethodUnresolved.
type Result struct {
	EntityID         string  `json:"entity_id,omitempty"`
	Confidence       float64 `json:"confidence"`
	Method           Method  `json:"method"`
	CollisionWarning string  `json:"collision_warning,omitempty"`
}

// Resolved reports whether the result carries an entity id.
func (r Result) Resolved() bool {
	return r.EntityID != ""
}

// SpeakerTurn is one entry of the prior-speaker history used for deictic
// resolution.
type SpeakerTurn struct {
	EntityID    string               `json:"entity_id"`
	Affiliation registry.Affiliation `json:"affiliation"`
}

// Input is a single resolution request. ReferenceDate may be zero, which
// widens temporal candidates to all tenures. Speaker and SpeakerContext
// are only consulted for deictic patterns; SpeakerContext is ordered
// oldest first.
type Input struct {
	RawText        string
	ReferenceDate  registry.ISODate
	Speaker        *SpeakerTurn
	SpeakerContext []SpeakerTurn
}
