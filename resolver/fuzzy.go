package resolver

import (
	"sort"
	"strings"

	"github.com/caribdigital/graphhansard/registry"
)

// tokenSortRatio scores two normalized strings on a 0-100 scale,
// insensitive to token order: "cooper chester" and "chester cooper" score
// 100. The underlying measure is indel similarity (Levenshtein with
// substitutions counted as delete+insert), the same family RapidFuzz uses.
func tokenSortRatio(a, b string) float64 {
	return indelRatio(tokenSort(a), tokenSort(b))
}

func tokenSort(s string) string {
	fields := strings.Fields(s)
	sort.Strings(fields)
	return strings.Join(fields, " ")
}

func indelRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	return 200 * float64(lcsLength(ra, rb)) / float64(total)
}

// lcsLength computes longest-common-subsequence length with a two-row
// dynamic program. Indel distance is len(a)+len(b)-2*LCS.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// fuzzyStrategy scores the mention against every indexed alias and accepts
// the best hit at or above the configured threshold.
type fuzzyStrategy struct {
	index     *registry.AliasIndex
	threshold int
}

func (s *fuzzyStrategy) attempt(normalized string, in Input) (Result, bool) {
	if normalized == "" {
		return Result{}, false
	}

	bestScore := 0.0
	bestAlias := ""

	// Aliases() is sorted, so equal scores break toward the
	// lexicographically smallest alias: deterministic by construction.
	for _, alias := range s.index.Aliases() {
		if !hasValidCandidate(s.index.Lookup(alias), in.ReferenceDate) {
			continue
		}
		score := tokenSortRatio(normalized, alias)
		if score > bestScore {
			bestScore = score
			bestAlias = alias
			if score == 100 {
				break
			}
		}
	}

	if bestAlias == "" || bestScore < float64(s.threshold) {
		return Result{}, false
	}

	var entityID string
	for _, c := range s.index.Lookup(bestAlias) {
		if c.ValidOn(in.ReferenceDate) {
			entityID = c.EntityID
			break
		}
	}

	confidence := bestScore / 100
	floor := float64(s.threshold) / 100
	if confidence < floor {
		confidence = floor
	}
	if confidence > 1 {
		confidence = 1
	}

	return Result{
		EntityID:   entityID,
		Confidence: confidence,
		Method:     MethodFuzzy,
	}, true
}

func hasValidCandidate(cands []registry.Candidate, d registry.ISODate) bool {
	for _, c := range cands {
		if c.ValidOn(d) {
			return true
		}
	}
	return false
}
