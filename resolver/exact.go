package resolver

import (
	"fmt"
	"strings"

	"github.com/caribdigital/graphhansard/registry"
)

// exactStrategy looks the normalized mention up in the alias index,
// applying temporal filtering when a reference date is present.
type exactStrategy struct {
	index *registry.AliasIndex
}

func (s *exactStrategy) attempt(normalized string, in Input) (Result, bool) {
	cands := s.index.Lookup(normalized)
	if len(cands) == 0 {
		return Result{}, false
	}

	// Distinct entity ids valid on the reference date, in index order
	// (lexicographic id): the documented deterministic tie-break.
	seen := make(map[string]bool, len(cands))
	var valid []string
	for _, c := range cands {
		if c.ValidOn(in.ReferenceDate) && !seen[c.EntityID] {
			seen[c.EntityID] = true
			valid = append(valid, c.EntityID)
		}
	}

	if len(valid) == 0 {
		return Result{}, false
	}

	var warning string
	if len(valid) > 1 {
		if rec, ok := s.index.KnownCollision(normalized); ok {
			warning = fmt.Sprintf("alias collision: %s", rec.ResolutionStrategy)
		} else {
			warning = fmt.Sprintf("unexpected alias collision: %s", strings.Join(valid, ", "))
		}
	}

	return Result{
		EntityID:         valid[0],
		Confidence:       1.0,
		Method:           MethodExact,
		CollisionWarning: warning,
	}, true
}
