package graph

import (
	"math"

	"github.com/caribdigital/graphhansard/config"
)

// adjacency is the index-based view of the political edge set used by
// the centrality and community algorithms. Node order is the sorted id
// order of the owning graph, which keeps every computation
// deterministic.
type adjacency struct {
	ids    []string
	index  map[string]int
	out    [][]int
	in     [][]int
	weight map[[2]int]float64
}

func newAdjacency(ids []string, edges []EdgeRecord) *adjacency {
	n := len(ids)
	a := &adjacency{
		ids:    ids,
		index:  make(map[string]int, n),
		out:    make([][]int, n),
		in:     make([][]int, n),
		weight: make(map[[2]int]float64, len(edges)),
	}
	for i, id := range ids {
		a.index[id] = i
	}
	for _, e := range edges {
		s, t := a.index[e.SourceEntityID], a.index[e.TargetEntityID]
		a.out[s] = append(a.out[s], t)
		a.in[t] = append(a.in[t], s)
		a.weight[[2]int{s, t}] = float64(e.TotalCount)
	}
	return a
}

func (a *adjacency) size() int {
	return len(a.ids)
}

// betweenness computes directed shortest-path betweenness centrality
// using Brandes' accumulation, normalized by (n-1)(n-2). Graphs too
// small for the normalization constant return all zeros.
func (a *adjacency) betweenness() []float64 {
	n := a.size()
	scores := make([]float64, n)
	if n < 3 {
		return scores
	}

	for s := 0; s < n; s++ {
		// BFS from s over unweighted directed edges
		stack := make([]int, 0, n)
		preds := make([][]int, n)
		sigma := make([]float64, n)
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		sigma[s] = 1
		dist[s] = 0

		queue := []int{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range a.out[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		// Dependency accumulation in reverse BFS order
		delta := make([]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				scores[w] += delta[w]
			}
		}
	}

	norm := float64((n - 1) * (n - 2))
	for i := range scores {
		scores[i] /= norm
	}
	return scores
}

// eigenvector computes eigenvector centrality by power iteration on the
// mention-count-weighted adjacency: a node's score is the weighted sum
// of the scores of nodes referencing it. Scores are Euclidean
// normalized each sweep; convergence is max component change below the
// configured tolerance. Degenerate graphs yield all zeros.
func (a *adjacency) eigenvector(cfg config.EigenvectorConfig) []float64 {
	n := a.size()
	scores := make([]float64, n)
	if n < 2 || len(a.weight) == 0 {
		return scores
	}

	initial := 1.0 / math.Sqrt(float64(n))
	for i := range scores {
		scores[i] = initial
	}

	newScores := make([]float64, n)
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		for i := 0; i < n; i++ {
			sum := 0.0
			for _, j := range a.in[i] {
				sum += scores[j] * a.weight[[2]int{j, i}]
			}
			newScores[i] = sum
		}

		norm := 0.0
		for _, v := range newScores {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			// No in-edges anywhere reachable; nothing to converge to
			return make([]float64, n)
		}
		for i := range newScores {
			newScores[i] /= norm
		}

		maxDiff := 0.0
		for i := range scores {
			diff := math.Abs(newScores[i] - scores[i])
			if diff > maxDiff {
				maxDiff = diff
			}
		}

		scores, newScores = newScores, scores
		if maxDiff < cfg.Tolerance {
			break
		}
	}
	return scores
}

// closeness computes directed closeness centrality with the
// Wasserman-Faust correction for disconnected graphs: each node's score
// is scaled by the fraction of the graph it can reach. Unreachable or
// singleton nodes score 0.
func (a *adjacency) closeness() []float64 {
	n := a.size()
	scores := make([]float64, n)
	if n < 2 {
		return scores
	}

	for s := 0; s < n; s++ {
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		dist[s] = 0
		queue := []int{s}
		totalDist := 0
		reached := 0
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, w := range a.out[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					totalDist += dist[w]
					reached++
					queue = append(queue, w)
				}
			}
		}

		if reached == 0 || totalDist == 0 {
			continue
		}
		reach := float64(reached)
		scores[s] = (reach / float64(n-1)) * (reach / float64(totalDist))
	}
	return scores
}
