package model

import "sort"

// Graph is the in-memory ego graph. Node ids are unique; edges may reference
// ids that are not in Nodes.
type Graph struct {
	Nodes []GraphNode
	Edges []GraphEdge
	Meta  map[string]interface{}

	index map[string]int
}

func NewGraph() *Graph {
	return &Graph{
		Meta:  make(map[string]interface{}),
		index: make(map[string]int),
	}
}

// AddNode inserts n, or updates the existing node with the same id in place.
func (g *Graph) AddNode(n GraphNode) {
	if g.index == nil {
		g.reindex()
	}
	if i, ok := g.index[n.ID]; ok {
		g.Nodes[i] = n
		return
	}
	g.index[n.ID] = len(g.Nodes)
	g.Nodes = append(g.Nodes, n)
}

func (g *Graph) AddEdge(source, target, relation string) {
	g.Edges = append(g.Edges, GraphEdge{Source: source, Target: target, Relation: relation})
}

func (g *Graph) Node(id string) (GraphNode, bool) {
	if g.index == nil {
		g.reindex()
	}
	i, ok := g.index[id]
	if !ok {
		return GraphNode{}, false
	}
	return g.Nodes[i], true
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.Node(id)
	return ok
}

// SetExtra attaches an enrichment value to node id. Unknown ids are ignored.
func (g *Graph) SetExtra(id, key string, value interface{}) {
	if g.index == nil {
		g.reindex()
	}
	i, ok := g.index[id]
	if !ok {
		return
	}
	if g.Nodes[i].Extra == nil {
		g.Nodes[i].Extra = make(map[string]interface{})
	}
	g.Nodes[i].Extra[key] = value
}

// DanglingEdges returns the edges with at least one endpoint outside Nodes.
func (g *Graph) DanglingEdges() []GraphEdge {
	var out []GraphEdge
	for _, e := range g.Edges {
		if !g.HasNode(e.Source) || !g.HasNode(e.Target) {
			out = append(out, e)
		}
	}
	return out
}

// CountByKind is used for logging and summaries.
func (g *Graph) CountByKind() map[NodeKind]int {
	counts := make(map[NodeKind]int)
	for _, n := range g.Nodes {
		counts[n.Kind]++
	}
	return counts
}

// Relations returns the distinct relation labels, sorted.
func (g *Graph) Relations() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range g.Edges {
		if !seen[e.Relation] {
			seen[e.Relation] = true
			out = append(out, e.Relation)
		}
	}
	sort.Strings(out)
	return out
}

func (g *Graph) reindex() {
	g.index = make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		g.index[n.ID] = i
	}
}
