// Package network assembles the Wikipedia link graph over the people table.
package network

import (
	"sort"

	"github.com/Touseeqkh/wiki-network-dashboard/internal/graph"
	"github.com/Touseeqkh/wiki-network-dashboard/internal/person"
)

// Outgoing maps each fetched page title to the set of titles its article
// links to.
type Outgoing map[string]map[string]bool

// NewOutgoing builds an outgoing map from title -> link list pairs.
func NewOutgoing(pages map[string][]string) Outgoing {
	out := make(Outgoing, len(pages))
	for title, links := range pages {
		set := make(map[string]bool, len(links))
		for _, l := range links {
			set[l] = true
		}
		out[title] = set
	}
	return out
}

// Links returns the outgoing set for a title as a sorted slice.
func (o Outgoing) Links(title string) []string {
	return sortedKeys(o[title])
}

// Incoming returns the table members whose outgoing set contains the given
// name, sorted. This is an approximation bounded by the fetched population:
// links from pages outside the table are invisible to it. A member's own
// outgoing set never counts toward its incoming set.
func Incoming(name string, outgoing Outgoing) []string {
	var sources []string
	for other, links := range outgoing {
		if other == name {
			continue
		}
		if links[name] {
			sources = append(sources, other)
		}
	}
	sort.Strings(sources)
	return sources
}

// Result is the assembled network: the people with link counts attached,
// the directed graph restricted to table members, and the computed metrics.
type Result struct {
	People   []person.Person    `json:"people"`
	Graph    *graph.Graph       `json:"-"`
	Outgoing Outgoing           `json:"-"`
	PageRank map[string]float64 `json:"pagerank"`
}

// Build assembles the directed graph from the fetched outgoing map. Every
// table member becomes a node; an edge is added for each (member, linked
// member) pair, so links to anything outside the table are discarded.
// Self-links are dropped. Degree counts are attached to the table rows and
// PageRank is computed over the full graph.
func Build(table *person.Table, outgoing Outgoing) *Result {
	g := graph.New()
	for _, name := range table.Names() {
		g.AddNode(name)
	}

	for _, source := range table.Names() {
		for _, target := range sortedKeys(outgoing[source]) {
			if target == source || !table.Contains(target) {
				continue
			}
			g.AddEdge(source, target)
		}
	}

	for _, name := range table.Names() {
		// Degrees on a freshly built graph cannot be negative
		_ = table.SetDegrees(name, g.InDegree(name), g.OutDegree(name))
	}

	return &Result{
		People:   table.People(),
		Graph:    g,
		Outgoing: outgoing,
		PageRank: g.PageRank(),
	}
}

// Selection restricts the rendered node set. All conditions intersect;
// zero values leave their dimension unfiltered.
type Selection struct {
	Person  string   `json:"person,omitempty"`
	Genders []string `json:"genders,omitempty"`
	Search  string   `json:"search,omitempty"`
}

// IsZero reports whether the selection filters nothing.
func (s Selection) IsZero() bool {
	return s.Person == "" && len(s.Genders) == 0 && s.Search == ""
}

// View is a filtered slice of a Result. Metrics are carried over from the
// full graph, never recomputed, so filtering is a pure restriction of
// already-computed data.
type View struct {
	People   []person.Person    `json:"people"`
	Graph    *graph.Graph       `json:"-"`
	PageRank map[string]float64 `json:"pagerank"`
}

// Select applies a selection to the result. Selecting a person keeps that
// person and their graph neighbors. A filter value matching nobody yields
// an empty view, not an error.
func (r *Result) Select(sel Selection) *View {
	people := person.FilterByGender(r.People, sel.Genders)
	people = person.SearchByName(people, sel.Search)

	if sel.Person != "" {
		focus := map[string]bool{sel.Person: true}
		for _, n := range r.Graph.Neighbors(sel.Person) {
			focus[n] = true
		}
		kept := make([]person.Person, 0, len(people))
		for _, p := range people {
			if focus[p.Name] {
				kept = append(kept, p)
			}
		}
		people = kept
	}

	keep := make(map[string]bool, len(people))
	for _, p := range people {
		keep[p.Name] = true
	}

	sub := r.Graph.Subgraph(keep)
	ranks := make(map[string]float64, len(people))
	for name := range keep {
		if score, ok := r.PageRank[name]; ok {
			ranks[name] = score
		}
	}

	return &View{
		People:   people,
		Graph:    sub,
		PageRank: ranks,
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
