// Package viz renders the person network as a self-contained HTML page.
package viz

// GraphData contains all data needed to render the visualization.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node represents a person in the rendered network.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	// Person attributes (for tooltips and filters)
	Gender      string `json:"gender,omitempty"`
	Occupation  string `json:"occupation,omitempty"`
	Birthdate   string `json:"birthdate,omitempty"`
	Nationality string `json:"nationality,omitempty"`

	// Link metrics
	InDegree  int     `json:"inDegree"`
	OutDegree int     `json:"outDegree"`
	PageRank  float64 `json:"pagerank"`

	// Spring layout position
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	// Marker size derived from PageRank
	Size float64 `json:"size"`
}

// Edge represents a directed link between two people in the table.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}
