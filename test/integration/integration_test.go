//go:build integration

package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/egograph/internal/config"
	"github.com/agenthands/egograph/internal/core"
	"github.com/agenthands/egograph/internal/core/builder"
	"github.com/agenthands/egograph/internal/core/model"
	"github.com/agenthands/egograph/internal/driver"
	"github.com/agenthands/egograph/internal/registry"
)

func TestLiveRegistryFlow(t *testing.T) {
	_ = godotenv.Load("../../.env")
	if os.Getenv("EGO_LIVE_API") != "1" {
		t.Skip("Skipping live registry test: EGO_LIVE_API not set")
	}

	baseURL := os.Getenv("EGO_REGISTRY_URL")
	if baseURL == "" {
		baseURL = config.Default().Registry.BaseURL
	}
	query := os.Getenv("EGO_LIVE_QUERY")
	if query == "" {
		query = "Jan Kowalski"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := registry.NewClient(baseURL, 30*time.Second)
	out := filepath.Join(t.TempDir(), "ego.json")
	e := core.NewEgoGraph(client, builder.New("", ""), out)

	candidates, err := e.Search(ctx, query)
	require.NoError(t, err)
	if len(candidates) == 0 {
		t.Skipf("no candidates for %q", query)
	}
	assert.Equal(t, 1, candidates[0].No)

	g, err := e.Build(ctx, candidates[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, g.CountByKind()[model.KindEgo])

	saved, err := builder.Load(out)
	require.NoError(t, err)
	assert.Len(t, saved.Nodes, len(g.Nodes))
	assert.Len(t, saved.Edges, len(g.Edges))
}

func TestMemgraphExport(t *testing.T) {
	_ = godotenv.Load("../../.env")
	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}

	ctx := context.Background()
	d, err := driver.NewMemgraphDriver(ctx, uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"))
	require.NoError(t, err)
	defer d.Close(ctx)

	subject := "it-" + time.Now().Format("20060102150405")
	g := model.NewGraph()
	g.Meta["subject"] = subject
	g.AddNode(model.GraphNode{ID: "osoba:" + subject, Kind: model.KindEgo, Label: "Jan Kowalski"})
	g.AddNode(model.GraphNode{ID: "podmiot:" + subject, Kind: model.KindInstitution, Label: "ACME"})
	g.AddEdge("osoba:"+subject, "podmiot:"+subject, "reprezentant")

	stats, err := driver.ExportGraph(ctx, d, g, "it-run")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Nodes)
	assert.Equal(t, 1, stats.Edges)

	res, err := d.ExecuteQuery(ctx, driver.CountSubjectNodesQuery, map[string]interface{}{"subject": subject})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	count, _ := res.Records[0].Get("count")
	assert.EqualValues(t, 2, count)
}
