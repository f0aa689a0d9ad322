package graph

import "math"

// PageRank parameters, the conventional defaults.
const (
	pageRankDamping    = 0.85
	pageRankIterations = 100
	pageRankTolerance  = 1e-6
)

// PageRank computes PageRank scores for every node. Scores sum to 1 for a
// non-empty graph; an empty graph yields an empty map. Rank lost to nodes
// with no outgoing edges is redistributed uniformly, which keeps the sum
// normalized even for graphs full of dead ends.
func (g *Graph) PageRank() map[string]float64 {
	n := len(g.order)
	if n == 0 {
		return map[string]float64{}
	}

	ranks := make(map[string]float64, n)
	for _, id := range g.order {
		ranks[id] = 1.0 / float64(n)
	}

	base := (1.0 - pageRankDamping) / float64(n)

	for iter := 0; iter < pageRankIterations; iter++ {
		// Rank held by dangling nodes is spread across all nodes
		dangling := 0.0
		for _, id := range g.order {
			if len(g.out[id]) == 0 {
				dangling += ranks[id]
			}
		}
		danglingShare := pageRankDamping * dangling / float64(n)

		next := make(map[string]float64, n)
		delta := 0.0
		for _, id := range g.order {
			sum := 0.0
			for source := range g.in[id] {
				sum += ranks[source] / float64(len(g.out[source]))
			}
			next[id] = base + danglingShare + pageRankDamping*sum
			delta += math.Abs(next[id] - ranks[id])
		}

		ranks = next
		if delta < pageRankTolerance {
			break
		}
	}

	return ranks
}
