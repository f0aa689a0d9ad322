// Package layout computes deterministic 3D positions for graph rendering.
package layout

import (
	"math"
	"math/rand"

	"github.com/Touseeqkh/wiki-network-dashboard/internal/graph"
)

// DefaultSeed keeps layouts stable across runs.
const DefaultSeed = 42

// iterations is the number of force-simulation rounds. Tables are small,
// so a fixed round count converges well before it matters.
const iterations = 50

// Point3 is a node position, normalized to the [-1, 1] cube.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Spring3D computes a force-directed (spring) layout in three dimensions.
// Connected nodes attract, all pairs repel, and the temperature cools
// linearly. The same seed always produces the same positions.
func Spring3D(g *graph.Graph, seed int64) map[string]Point3 {
	nodes := g.Nodes()
	n := len(nodes)
	positions := make(map[string]Point3, n)

	switch n {
	case 0:
		return positions
	case 1:
		positions[nodes[0]] = Point3{}
		return positions
	}

	rng := rand.New(rand.NewSource(seed))
	pos := make([][3]float64, n)
	for i := range pos {
		pos[i] = [3]float64{rng.Float64(), rng.Float64(), rng.Float64()}
	}

	idx := make(map[string]int, n)
	for i, id := range nodes {
		idx[id] = i
	}
	edges := g.Edges()

	// Optimal pairwise distance for the unit volume
	k := 1.0 / math.Sqrt(float64(n))

	// Initial temperature limits per-round movement; cool to zero
	t := 0.1
	dt := t / float64(iterations+1)

	disp := make([][3]float64, n)
	for round := 0; round < iterations; round++ {
		for i := range disp {
			disp[i] = [3]float64{}
		}

		// Repulsion between every pair
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				delta := sub(pos[i], pos[j])
				d := norm(delta)
				force := k * k / (d * d)
				push := scale(delta, force/d)
				disp[i] = add(disp[i], push)
				disp[j] = sub(disp[j], push)
			}
		}

		// Attraction along edges
		for _, e := range edges {
			i, j := idx[e.Source], idx[e.Target]
			if i == j {
				continue
			}
			delta := sub(pos[i], pos[j])
			d := norm(delta)
			force := d * d / k
			pull := scale(delta, force/d)
			disp[i] = sub(disp[i], pull)
			disp[j] = add(disp[j], pull)
		}

		// Move each node, capped by the current temperature
		for i := 0; i < n; i++ {
			d := norm(disp[i])
			step := math.Min(d, t)
			pos[i] = add(pos[i], scale(disp[i], step/d))
		}
		t -= dt
	}

	rescale(pos)
	for i, id := range nodes {
		positions[id] = Point3{X: pos[i][0], Y: pos[i][1], Z: pos[i][2]}
	}
	return positions
}

// rescale centers positions on the origin and scales the widest axis to 1.
func rescale(pos [][3]float64) {
	var centroid [3]float64
	for _, p := range pos {
		centroid = add(centroid, p)
	}
	centroid = scale(centroid, 1.0/float64(len(pos)))

	maxAbs := 0.0
	for i := range pos {
		pos[i] = sub(pos[i], centroid)
		for _, c := range pos[i] {
			if abs := math.Abs(c); abs > maxAbs {
				maxAbs = abs
			}
		}
	}
	if maxAbs == 0 {
		return
	}
	for i := range pos {
		pos[i] = scale(pos[i], 1.0/maxAbs)
	}
}

func add(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func scale(a [3]float64, f float64) [3]float64 {
	return [3]float64{a[0] * f, a[1] * f, a[2] * f}
}

// norm returns the Euclidean length, floored away from zero so overlapping
// nodes still repel instead of dividing by zero.
func norm(a [3]float64) float64 {
	d := math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
	if d < 1e-9 {
		return 1e-9
	}
	return d
}
