package community

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/egograph/internal/core/model"
)

func TestComponentDetector(t *testing.T) {
	nodes := []model.GraphNode{
		{ID: "1", Label: "A"},
		{ID: "2", Label: "B"},
		{ID: "3", Label: "C"},
		{ID: "4", Label: "D"},
	}
	edges := []model.GraphEdge{
		{Source: "1", Target: "2"}, // A-B
		{Source: "2", Target: "3"}, // B-C
		// D is isolated
	}

	communities, err := (&ComponentDetector{}).Detect(nodes, edges)

	assert.NoError(t, err)
	require.Len(t, communities, 1)
	assert.Len(t, communities[0], 3)

	ids := map[string]bool{}
	for _, n := range communities[0] {
		ids[n.ID] = true
	}
	assert.True(t, ids["1"])
	assert.True(t, ids["2"])
	assert.True(t, ids["3"])
}

func TestComponentDetector_MultipleCommunities(t *testing.T) {
	nodes := nodesOf("1", "2", "3", "4")
	edges := []model.GraphEdge{
		{Source: "1", Target: "2"},
		{Source: "3", Target: "4"},
	}

	communities, err := (&ComponentDetector{}).Detect(nodes, edges)

	assert.NoError(t, err)
	assert.Len(t, communities, 2)
}

func TestNewDetector(t *testing.T) {
	d, err := NewDetector("lpa")
	require.NoError(t, err)
	assert.IsType(t, &LabelPropagationDetector{}, d)

	d, err = NewDetector("components")
	require.NoError(t, err)
	assert.IsType(t, &ComponentDetector{}, d)

	_, err = NewDetector("louvain")
	assert.Error(t, err)
}

func TestAnnotate(t *testing.T) {
	g := model.NewGraph()
	for _, id := range []string{"osoba:1", "osoba:2", "podmiot:9", "osoba:5", "podmiot:7", "podmiot:8"} {
		g.AddNode(model.GraphNode{ID: id, Kind: model.KindPerson})
	}
	g.AddEdge("osoba:1", "podmiot:9", "reprezentant")
	g.AddEdge("osoba:2", "podmiot:9", "wspolnik")
	g.AddEdge("osoba:5", "podmiot:7", "reprezentant")
	g.AddEdge("podmiot:8", "adres:1", "adres")

	n, err := Annotate(g, &ComponentDetector{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	community := func(id string) interface{} {
		node, _ := g.Node(id)
		return node.Extra[AttributeKey]
	}
	assert.Equal(t, 0, community("osoba:1"))
	assert.Equal(t, 0, community("osoba:2"))
	assert.Equal(t, 0, community("podmiot:9"))
	assert.Equal(t, 1, community("osoba:5"))
	assert.Equal(t, 1, community("podmiot:7"))
	assert.Nil(t, community("podmiot:8"))
}
