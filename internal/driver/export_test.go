package driver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/egograph/internal/core/model"
)

func sampleGraph() *model.Graph {
	g := model.NewGraph()
	g.Meta["subject"] = "1"
	g.AddNode(model.GraphNode{ID: "osoba:1", Kind: model.KindEgo, Label: "Jan Kowalski"})
	g.AddNode(model.GraphNode{
		ID:         "podmiot:9",
		Kind:       model.KindInstitution,
		Label:      "ACME",
		Attributes: map[string]interface{}{"krs": "0000012345"},
	})
	g.SetExtra("podmiot:9", "community", 0)
	g.AddEdge("osoba:1", "podmiot:9", "reprezentant")
	g.AddEdge("osoba:1", "adres:3", "adres")
	return g
}

func TestExportGraph(t *testing.T) {
	d := &MockDriver{}

	stats, err := ExportGraph(context.Background(), d, sampleGraph(), "run-1")

	require.NoError(t, err)
	assert.Equal(t, ExportStats{Nodes: 2, Edges: 1, Skipped: 1}, stats)
	require.Len(t, d.Queries, 2)

	nodes := d.Queries[0]
	assert.Equal(t, SaveNodesQuery, nodes.Query)
	assert.Equal(t, "1", nodes.Params["subject"])
	assert.Equal(t, "run-1", nodes.Params["run_id"])
	rows := nodes.Params["nodes"].([]interface{})
	require.Len(t, rows, 2)
	ego := rows[0].(map[string]interface{})
	assert.Equal(t, "osoba:1", ego["id"])
	assert.Equal(t, "ego", ego["group"])
	assert.Equal(t, "{}", ego["attributes"])
	assert.Nil(t, ego["community"])
	inst := rows[1].(map[string]interface{})
	assert.Equal(t, "podmiot", inst["group"])
	assert.JSONEq(t, `{"krs":"0000012345"}`, inst["attributes"].(string))
	assert.Equal(t, 0, inst["community"])

	edges := d.Queries[1]
	assert.Equal(t, SaveEdgesQuery, edges.Query)
	edgeRows := edges.Params["edges"].([]interface{})
	require.Len(t, edgeRows, 1)
	assert.Equal(t, map[string]interface{}{
		"source":   "osoba:1",
		"target":   "podmiot:9",
		"relation": "reprezentant",
	}, edgeRows[0])
}

func TestExportGraphBatches(t *testing.T) {
	g := model.NewGraph()
	for i := 0; i < BatchSize+1; i++ {
		g.AddNode(model.GraphNode{ID: fmt.Sprintf("podmiot:%d", i), Kind: model.KindInstitution})
	}
	d := &MockDriver{}

	stats, err := ExportGraph(context.Background(), d, g, "run-2")

	require.NoError(t, err)
	assert.Equal(t, BatchSize+1, stats.Nodes)
	require.Len(t, d.Queries, 2)
	assert.Len(t, d.Queries[0].Params["nodes"], BatchSize)
	assert.Len(t, d.Queries[1].Params["nodes"], 1)
}

func TestExportGraphErrors(t *testing.T) {
	d := &MockDriver{Err: errors.New("bolt: connection reset")}
	_, err := ExportGraph(context.Background(), d, sampleGraph(), "run-3")
	assert.ErrorContains(t, err, "failed to save nodes")
	assert.ErrorContains(t, err, "connection reset")

	d = &MockDriver{IndexErr: errors.New("no permission")}
	_, err = ExportGraph(context.Background(), d, sampleGraph(), "run-3")
	assert.ErrorContains(t, err, "no permission")
	assert.Empty(t, d.Queries)
}
