package community

import (
	"fmt"
	"sort"

	"github.com/agenthands/egograph/internal/core/model"
)

// AttributeKey is the node-link key the community index is written under.
const AttributeKey = "community"

type CommunityDetector interface {
	Detect(nodes []model.GraphNode, edges []model.GraphEdge) ([][]model.GraphNode, error)
}

// NewDetector returns the detector registered under name ("lpa" or
// "components").
func NewDetector(name string) (CommunityDetector, error) {
	switch name {
	case "lpa":
		return NewLabelPropagationDetector(), nil
	case "components":
		return &ComponentDetector{}, nil
	default:
		return nil, fmt.Errorf("unknown community detector: %q", name)
	}
}

// Annotate runs d over g and stores each node's community index (0 = largest)
// in its extra attributes. Nodes outside any community of two or more are
// left untouched. It returns the number of communities found.
func Annotate(g *model.Graph, d CommunityDetector) (int, error) {
	communities, err := d.Detect(g.Nodes, g.Edges)
	if err != nil {
		return 0, err
	}
	for i, community := range communities {
		for _, n := range community {
			g.SetExtra(n.ID, AttributeKey, i)
		}
	}
	return len(communities), nil
}

// ComponentDetector groups nodes by connected component.
type ComponentDetector struct{}

func (d *ComponentDetector) Detect(nodes []model.GraphNode, edges []model.GraphEdge) ([][]model.GraphNode, error) {
	nodeMap := make(map[string]model.GraphNode)
	adj := make(map[string][]string)

	for _, n := range nodes {
		nodeMap[n.ID] = n
	}

	for _, e := range edges {
		// Dangling registry references cannot join two components.
		if _, ok := nodeMap[e.Source]; !ok {
			continue
		}
		if _, ok := nodeMap[e.Target]; !ok {
			continue
		}

		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}

	visited := make(map[string]bool)
	var communities [][]model.GraphNode

	for _, n := range nodes {
		if visited[n.ID] {
			continue
		}
		componentIDs := []string{}
		d.dfs(n.ID, adj, visited, &componentIDs)

		if len(componentIDs) >= 2 {
			var community []model.GraphNode
			for _, id := range componentIDs {
				community = append(community, nodeMap[id])
			}
			communities = append(communities, community)
		}
	}

	sortCommunities(communities)
	return communities, nil
}

func (d *ComponentDetector) dfs(u string, adj map[string][]string, visited map[string]bool, component *[]string) {
	visited[u] = true
	*component = append(*component, u)
	for _, v := range adj[u] {
		if !visited[v] {
			d.dfs(v, adj, visited, component)
		}
	}
}

// sortCommunities orders by size (largest first), then by smallest member id.
func sortCommunities(communities [][]model.GraphNode) {
	for _, c := range communities {
		sort.Slice(c, func(i, j int) bool { return c[i].ID < c[j].ID })
	}
	sort.SliceStable(communities, func(i, j int) bool {
		if len(communities[i]) != len(communities[j]) {
			return len(communities[i]) > len(communities[j])
		}
		return communities[i][0].ID < communities[j][0].ID
	})
}
