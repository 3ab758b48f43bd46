package driver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/agenthands/egograph/internal/core/model"
)

// BatchSize is the number of rows sent per UNWIND query.
const BatchSize = 500

type ExportStats struct {
	Nodes   int
	Edges   int
	Skipped int
}

// ExportGraph mirrors g into the graph database. Edges whose endpoints are
// not in g.Nodes are skipped since MATCH would drop them anyway.
func ExportGraph(ctx context.Context, d GraphDriver, g *model.Graph, runID string) (ExportStats, error) {
	var stats ExportStats
	subject, _ := g.Meta["subject"].(string)

	if err := d.BuildIndices(ctx); err != nil {
		return stats, err
	}

	rows := make([]interface{}, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		row, err := nodeRow(n)
		if err != nil {
			return stats, err
		}
		rows = append(rows, row)
	}
	for _, batch := range batches(rows) {
		params := map[string]interface{}{
			"nodes":   batch,
			"subject": subject,
			"run_id":  runID,
		}
		if _, err := d.ExecuteQuery(ctx, SaveNodesQuery, params); err != nil {
			return stats, fmt.Errorf("failed to save nodes: %w", err)
		}
		stats.Nodes += len(batch)
	}

	edgeRows := make([]interface{}, 0, len(g.Edges))
	for _, e := range g.Edges {
		if !g.HasNode(e.Source) || !g.HasNode(e.Target) {
			stats.Skipped++
			continue
		}
		edgeRows = append(edgeRows, map[string]interface{}{
			"source":   e.Source,
			"target":   e.Target,
			"relation": e.Relation,
		})
	}
	for _, batch := range batches(edgeRows) {
		params := map[string]interface{}{
			"edges":  batch,
			"run_id": runID,
		}
		if _, err := d.ExecuteQuery(ctx, SaveEdgesQuery, params); err != nil {
			return stats, fmt.Errorf("failed to save edges: %w", err)
		}
		stats.Edges += len(batch)
	}

	log.Debug().
		Int("nodes", stats.Nodes).
		Int("edges", stats.Edges).
		Int("skipped", stats.Skipped).
		Msg("graph exported")
	return stats, nil
}

func nodeRow(n model.GraphNode) (map[string]interface{}, error) {
	attrs := "{}"
	if len(n.Attributes) > 0 {
		b, err := json.Marshal(n.Attributes)
		if err != nil {
			return nil, fmt.Errorf("node %s: failed to encode attributes: %w", n.ID, err)
		}
		attrs = string(b)
	}

	var community interface{}
	if v, ok := n.Extra["community"]; ok {
		community = v
	}

	return map[string]interface{}{
		"id":         n.ID,
		"name":       n.Label,
		"group":      n.Kind.Group(),
		"attributes": attrs,
		"community":  community,
	}, nil
}

func batches(rows []interface{}) [][]interface{} {
	var out [][]interface{}
	for i := 0; i < len(rows); i += BatchSize {
		end := i + BatchSize
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[i:end])
	}
	return out
}
