package viz

import (
	"github.com/Touseeqkh/wiki-network-dashboard/internal/layout"
	"github.com/Touseeqkh/wiki-network-dashboard/internal/network"
)

// Marker size is a base diameter plus a PageRank-proportional term.
const (
	markerSizeBase  = 5.0
	markerSizeScale = 50.0
)

// BuildGraphData assembles the renderable graph from a network view and a
// set of node positions. People missing from positions sit at the origin.
func BuildGraphData(view *network.View, positions map[string]layout.Point3) *GraphData {
	nodes := make([]Node, 0, len(view.People))
	for _, p := range view.People {
		pos := positions[p.Name]
		score := view.PageRank[p.Name]
		nodes = append(nodes, Node{
			ID:          p.Name,
			Label:       p.Name,
			Gender:      p.Gender,
			Occupation:  p.Occupation,
			Birthdate:   p.Birthdate,
			Nationality: p.Nationality,
			InDegree:    p.InDegree,
			OutDegree:   p.OutDegree,
			PageRank:    score,
			X:           pos.X,
			Y:           pos.Y,
			Z:           pos.Z,
			Size:        markerSize(score),
		})
	}

	edges := make([]Edge, 0, view.Graph.EdgeCount())
	for _, e := range view.Graph.Edges() {
		edges = append(edges, Edge{Source: e.Source, Target: e.Target})
	}

	return &GraphData{Nodes: nodes, Edges: edges}
}

// markerSize converts a PageRank score to a marker diameter.
func markerSize(pagerank float64) float64 {
	return pagerank*markerSizeScale + markerSizeBase
}
