// Package graph provides the directed link graph and its metrics.
package graph

import "sort"

// Graph is a directed graph over string node IDs.
// Nodes keep insertion order so traversal output is deterministic.
type Graph struct {
	nodes map[string]bool
	out   map[string]map[string]bool
	in    map[string]map[string]bool
	order []string
}

// Edge is an ordered (source, target) pair.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// New creates an empty directed graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]bool),
		out:   make(map[string]map[string]bool),
		in:    make(map[string]map[string]bool),
	}
}

// AddNode adds a node if not already present.
func (g *Graph) AddNode(id string) {
	if g.nodes[id] {
		return
	}
	g.nodes[id] = true
	g.order = append(g.order, id)
}

// AddEdge adds a directed edge, creating missing endpoints.
// Adding the same edge twice is a no-op.
func (g *Graph) AddEdge(source, target string) {
	g.AddNode(source)
	g.AddNode(target)

	if g.out[source] == nil {
		g.out[source] = make(map[string]bool)
	}
	if g.out[source][target] {
		return
	}
	g.out[source][target] = true

	if g.in[target] == nil {
		g.in[target] = make(map[string]bool)
	}
	g.in[target][source] = true
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id string) bool {
	return g.nodes[id]
}

// HasEdge reports whether the directed edge exists.
func (g *Graph) HasEdge(source, target string) bool {
	return g.out[source][target]
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, targets := range g.out {
		n += len(targets)
	}
	return n
}

// Nodes returns all node IDs in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Edges returns all edges, ordered by source insertion order and then
// target name.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, source := range g.order {
		targets := sortedKeys(g.out[source])
		for _, target := range targets {
			edges = append(edges, Edge{Source: source, Target: target})
		}
	}
	return edges
}

// InDegree returns the number of edges pointing at the node.
func (g *Graph) InDegree(id string) int {
	return len(g.in[id])
}

// OutDegree returns the number of edges leaving the node.
func (g *Graph) OutDegree(id string) int {
	return len(g.out[id])
}

// InNeighbors returns the sources of edges pointing at the node, sorted.
func (g *Graph) InNeighbors(id string) []string {
	return sortedKeys(g.in[id])
}

// OutNeighbors returns the targets of edges leaving the node, sorted.
func (g *Graph) OutNeighbors(id string) []string {
	return sortedKeys(g.out[id])
}

// Neighbors returns the union of in- and out-neighbors, sorted.
func (g *Graph) Neighbors(id string) []string {
	seen := make(map[string]bool, len(g.in[id])+len(g.out[id]))
	for n := range g.in[id] {
		seen[n] = true
	}
	for n := range g.out[id] {
		seen[n] = true
	}
	return sortedKeys(seen)
}

// Subgraph returns the graph induced on the given node set: the member
// nodes plus every edge whose endpoints both survive. Node order is
// preserved. Names not in the graph are ignored.
func (g *Graph) Subgraph(keep map[string]bool) *Graph {
	sub := New()
	for _, id := range g.order {
		if keep[id] {
			sub.AddNode(id)
		}
	}
	for _, source := range sub.order {
		for target := range g.out[source] {
			if keep[target] {
				sub.AddEdge(source, target)
			}
		}
	}
	return sub
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
