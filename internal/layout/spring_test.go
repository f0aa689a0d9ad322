package layout

import (
	"math"
	"testing"

	"github.com/Touseeqkh/wiki-network-dashboard/internal/graph"
)

func testGraph() *graph.Graph {
	g := graph.New()
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	g.AddEdge("C", "A")
	g.AddEdge("C", "D")
	g.AddNode("E")
	return g
}

func TestSpring3D_Deterministic(t *testing.T) {
	g := testGraph()

	first := Spring3D(g, DefaultSeed)
	second := Spring3D(g, DefaultSeed)

	if len(first) != g.NodeCount() {
		t.Fatalf("got %d positions for %d nodes", len(first), g.NodeCount())
	}
	for id, p := range first {
		if second[id] != p {
			t.Errorf("position for %s differs between runs: %v vs %v", id, p, second[id])
		}
	}
}

func TestSpring3D_SeedChangesLayout(t *testing.T) {
	g := testGraph()

	a := Spring3D(g, 1)
	b := Spring3D(g, 2)

	same := true
	for id, p := range a {
		if b[id] != p {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical layouts")
	}
}

func TestSpring3D_PositionsInUnitCube(t *testing.T) {
	g := testGraph()

	for id, p := range Spring3D(g, DefaultSeed) {
		for _, c := range []float64{p.X, p.Y, p.Z} {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				t.Fatalf("position for %s is not finite: %v", id, p)
			}
			if c < -1.000001 || c > 1.000001 {
				t.Errorf("position for %s outside [-1,1]: %v", id, p)
			}
		}
	}
}

func TestSpring3D_SmallGraphs(t *testing.T) {
	t.Run("empty graph", func(t *testing.T) {
		if got := Spring3D(graph.New(), DefaultSeed); len(got) != 0 {
			t.Errorf("Spring3D(empty) = %v, want empty map", got)
		}
	})

	t.Run("single node at origin", func(t *testing.T) {
		g := graph.New()
		g.AddNode("Solo")
		got := Spring3D(g, DefaultSeed)
		if got["Solo"] != (Point3{}) {
			t.Errorf("Spring3D(single) = %v, want origin", got["Solo"])
		}
	})

	t.Run("two overlapping nodes separate", func(t *testing.T) {
		g := graph.New()
		g.AddEdge("A", "B")
		got := Spring3D(g, DefaultSeed)
		if got["A"] == got["B"] {
			t.Error("connected pair ended at the same position")
		}
	})
}

func TestSpring3D_ConnectedNodesSitCloser(t *testing.T) {
	// A-B are linked both ways; E is isolated, so it should drift further
	// from A than B does.
	g := graph.New()
	g.AddEdge("A", "B")
	g.AddEdge("B", "A")
	g.AddNode("E")

	pos := Spring3D(g, DefaultSeed)
	if dist(pos["A"], pos["B"]) >= dist(pos["A"], pos["E"]) {
		t.Errorf("linked pair A-B (%v) not closer than A-E (%v)",
			dist(pos["A"], pos["B"]), dist(pos["A"], pos["E"]))
	}
}

func dist(a, b Point3) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
