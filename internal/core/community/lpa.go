package community

import (
	"sort"

	"github.com/agenthands/egograph/internal/core/model"
)

// LabelPropagationDetector implements community detection using Label Propagation Algorithm (LPA).
type LabelPropagationDetector struct {
	MaxIterations int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
	}
}

func (d *LabelPropagationDetector) Detect(nodes []model.GraphNode, edges []model.GraphEdge) ([][]model.GraphNode, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	// node -> neighbor -> weight; parallel relations between the same pair
	// (e.g. board member and shareholder) count as a stronger tie.
	adj := make(map[string]map[string]int)
	nodeMap := make(map[string]model.GraphNode)

	for _, n := range nodes {
		nodeMap[n.ID] = n
		adj[n.ID] = make(map[string]int)
	}

	for _, e := range edges {
		if _, ok := nodeMap[e.Source]; !ok {
			continue
		}
		if _, ok := nodeMap[e.Target]; !ok {
			continue
		}
		if e.Source == e.Target {
			continue
		}
		adj[e.Source][e.Target]++
		adj[e.Target][e.Source]++
	}

	labels := make(map[string]string)
	for _, n := range nodes {
		labels[n.ID] = n.ID
	}

	for iter := 0; iter < d.MaxIterations; iter++ {
		changeCount := 0

		for _, n := range nodes {
			u := n.ID
			neighbors := adj[u]
			if len(neighbors) == 0 {
				continue
			}

			labelCounts := make(map[string]int)
			maxCount := 0
			for v, weight := range neighbors {
				label := labels[v]
				labelCounts[label] += weight
				if labelCounts[label] > maxCount {
					maxCount = labelCounts[label]
				}
			}

			var candidates []string
			for label, count := range labelCounts {
				if count == maxCount {
					candidates = append(candidates, label)
				}
			}

			// Ties go to the lexicographically largest label so runs are reproducible.
			sort.Strings(candidates)
			bestLabel := candidates[len(candidates)-1]

			if labels[u] != bestLabel {
				labels[u] = bestLabel
				changeCount++
			}
		}

		if changeCount == 0 {
			break
		}
	}

	clusters := make(map[string][]model.GraphNode)
	for _, n := range nodes {
		label := labels[n.ID]
		clusters[label] = append(clusters[label], n)
	}

	var communities [][]model.GraphNode
	for _, cluster := range clusters {
		if len(cluster) >= 2 {
			communities = append(communities, cluster)
		}
	}

	sortCommunities(communities)
	return communities, nil
}
