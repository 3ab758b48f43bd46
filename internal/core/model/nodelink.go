package model

import (
	"encoding/json"
	"fmt"
)

// NodeLinkGraph is the serialized form read by the visualization page. The
// envelope matches networkx's node_link_data output.
type NodeLinkGraph struct {
	Directed   bool                     `json:"directed"`
	Multigraph bool                     `json:"multigraph"`
	Graph      map[string]interface{}   `json:"graph"`
	Nodes      []map[string]interface{} `json:"nodes"`
	Links      []map[string]interface{} `json:"links"`
}

// NodeLink converts g. Reserved keys (id, name, group, attributes) win over
// Extra entries of the same name.
func (g *Graph) NodeLink() *NodeLinkGraph {
	nl := &NodeLinkGraph{
		Graph: make(map[string]interface{}, len(g.Meta)),
		Nodes: make([]map[string]interface{}, 0, len(g.Nodes)),
		Links: make([]map[string]interface{}, 0, len(g.Edges)),
	}
	for k, v := range g.Meta {
		nl.Graph[k] = v
	}

	for _, n := range g.Nodes {
		entry := make(map[string]interface{}, 4+len(n.Extra))
		for k, v := range n.Extra {
			entry[k] = v
		}
		attrs := n.Attributes
		if attrs == nil {
			attrs = map[string]interface{}{}
		}
		entry["id"] = n.ID
		entry["name"] = n.Label
		entry["group"] = n.Kind.Group()
		entry["attributes"] = attrs
		nl.Nodes = append(nl.Nodes, entry)
	}

	for _, e := range g.Edges {
		nl.Links = append(nl.Links, map[string]interface{}{
			"source":   e.Source,
			"target":   e.Target,
			"relation": e.Relation,
		})
	}
	return nl
}

// ToGraph rebuilds an in-memory graph from the node-link form.
func (nl *NodeLinkGraph) ToGraph() (*Graph, error) {
	g := NewGraph()
	for k, v := range nl.Graph {
		g.Meta[k] = v
	}

	for i, entry := range nl.Nodes {
		id, ok := entry["id"].(string)
		if !ok {
			return nil, fmt.Errorf("node %d: id is not a string", i)
		}
		group, _ := entry["group"].(string)
		kind, ok := KindFromGroup(group)
		if !ok {
			return nil, fmt.Errorf("node %s: unknown group %q", id, group)
		}
		n := GraphNode{ID: id, Kind: kind}
		n.Label, _ = entry["name"].(string)
		n.Attributes, _ = entry["attributes"].(map[string]interface{})
		for k, v := range entry {
			switch k {
			case "id", "name", "group", "attributes":
				continue
			}
			if n.Extra == nil {
				n.Extra = make(map[string]interface{})
			}
			n.Extra[k] = v
		}
		g.AddNode(n)
	}

	for i, link := range nl.Links {
		source, ok1 := link["source"].(string)
		target, ok2 := link["target"].(string)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("link %d: source/target are not strings", i)
		}
		relation, _ := link["relation"].(string)
		g.AddEdge(source, target, relation)
	}
	return g, nil
}

func (nl *NodeLinkGraph) Marshal() ([]byte, error) {
	return json.Marshal(nl)
}

func UnmarshalNodeLink(data []byte) (*NodeLinkGraph, error) {
	var nl NodeLinkGraph
	if err := json.Unmarshal(data, &nl); err != nil {
		return nil, fmt.Errorf("failed to parse node-link graph: %w", err)
	}
	return &nl, nil
}
