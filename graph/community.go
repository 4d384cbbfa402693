package graph

import (
	"github.com/caribdigital/graphhansard/config"
)

// detectCommunities runs label propagation over the undirected
// projection of the political edge set and returns one community index
// per node plus the modularity of the partition. Detection is skipped
// (nil, nil) when disabled or when the graph is below the configured
// minimum size.
//
// The propagation is fully deterministic: nodes are visited in sorted
// id order every sweep, and vote ties go to the smallest label. This
// trades the oscillation-damping of randomized visit order for
// repeatable output, with the iteration cap as the oscillation
// backstop.
func detectCommunities(a *adjacency, cfg config.CommunityConfig) ([]int, *float64) {
	n := a.size()
	if !cfg.Enabled || n < cfg.MinNodes {
		return nil, nil
	}

	und := undirectedWeights(a)

	labels := make([]int, n)
	for i := range labels {
		labels[i] = i
	}

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		changed := false
		for i := 0; i < n; i++ {
			votes := make(map[int]float64)
			for j, w := range und[i] {
				votes[labels[j]] += w
			}
			if len(votes) == 0 {
				continue
			}

			best := labels[i]
			bestVotes := -1.0
			for label, v := range votes {
				if v > bestVotes || (v == bestVotes && label < best) {
					best = label
					bestVotes = v
				}
			}
			if best != labels[i] {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	// Renumber to consecutive community ids in node order
	renumber := make(map[int]int)
	assignments := make([]int, n)
	for i, label := range labels {
		id, ok := renumber[label]
		if !ok {
			id = len(renumber)
			renumber[label] = id
		}
		assignments[i] = id
	}

	q := modularity(und, labels)
	return assignments, &q
}

// undirectedWeights folds the directed weights into a symmetric
// neighbor map: w(i,j) = w(i->j) + w(j->i).
func undirectedWeights(a *adjacency) []map[int]float64 {
	n := a.size()
	und := make([]map[int]float64, n)
	for i := range und {
		und[i] = make(map[int]float64)
	}
	for key, w := range a.weight {
		s, t := key[0], key[1]
		if s == t {
			continue
		}
		und[s][t] += w
		und[t][s] += w
	}
	return und
}

// modularity computes Newman's Q for a partition over the undirected
// weighted projection.
func modularity(und []map[int]float64, labels []int) float64 {
	twoM := 0.0
	strength := make([]float64, len(und))
	for i, neighbors := range und {
		for _, w := range neighbors {
			strength[i] += w
			twoM += w
		}
	}
	if twoM == 0 {
		return 0
	}

	q := 0.0
	for i, neighbors := range und {
		for j, w := range neighbors {
			if labels[i] == labels[j] {
				q += w - strength[i]*strength[j]/twoM
			}
		}
	}
	return q / twoM
}
