package graph

import (
	"math"
	"sort"

	"github.com/caribdigital/graphhansard/config"
)

// assignRoles labels every node with its structural roles based on the
// configured percentile thresholds. A zero-degree node gets exactly
// {isolated}; metric-based roles additionally require a positive score
// so that an all-zero metric never labels the whole graph.
func assignRoles(nodes []NodeMetrics, th config.RoleThresholds) {
	if len(nodes) == 0 {
		return
	}

	eigen := make([]float64, len(nodes))
	between := make([]float64, len(nodes))
	inDeg := make([]float64, len(nodes))
	for i, n := range nodes {
		eigen[i] = n.Eigenvector
		between[i] = n.Betweenness
		inDeg[i] = float64(n.InDegree)
	}

	eigenCut := percentile(eigen, th.ForceMultiplierPercentile)
	betweenCut := percentile(between, th.BridgePercentile)
	hubCut := percentile(inDeg, th.HubPercentile)

	for i := range nodes {
		n := &nodes[i]
		n.StructuralRoles = n.StructuralRoles[:0]

		if n.InDegree == 0 && n.OutDegree == 0 {
			n.StructuralRoles = append(n.StructuralRoles, RoleIsolated)
			continue
		}
		if n.Eigenvector > 0 && n.Eigenvector >= eigenCut {
			n.StructuralRoles = append(n.StructuralRoles, RoleForceMultiplier)
		}
		if n.Betweenness > 0 && n.Betweenness >= betweenCut {
			n.StructuralRoles = append(n.StructuralRoles, RoleBridge)
		}
		if n.InDegree > 0 && float64(n.InDegree) >= hubCut {
			n.StructuralRoles = append(n.StructuralRoles, RoleHub)
		}
	}
}

// percentile returns the nearest-rank percentile of the values.
func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := int(math.Ceil(p / 100.0 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}
