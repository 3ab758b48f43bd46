package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingServer(t *testing.T, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFetchStoresAndReusesCachedDetail(t *testing.T) {
	srv, hits := countingServer(t, detailBody)
	mc := NewMockCache()

	c := NewClient(srv.URL, 0)
	c.Cache = mc

	first, err := c.Fetch(context.Background(), "101")
	require.NoError(t, err)
	second, err := c.Fetch(context.Background(), "101")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	assert.Equal(t, 1, mc.Sets)
	assert.Contains(t, mc.Data, "detail:101")
	assert.Equal(t, len(first.Layers.Graph.Nodes), len(second.Layers.Graph.Nodes))
}

func TestSearchCacheKeyedByQuery(t *testing.T) {
	srv, hits := countingServer(t, searchBody)
	mc := NewMockCache()

	c := NewClient(srv.URL, 0)
	c.Cache = mc

	_, err := c.Search(context.Background(), "Jan Kowalski")
	require.NoError(t, err)
	_, err = c.Search(context.Background(), "Anna Nowak")
	require.NoError(t, err)
	_, err = c.Search(context.Background(), "Jan Kowalski")
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
	assert.Contains(t, mc.Data, "search:Jan Kowalski")
	assert.Contains(t, mc.Data, "search:Anna Nowak")
}

func TestInvalidResponseIsNotCached(t *testing.T) {
	srv, _ := countingServer(t, `{"id": "1"}`)
	mc := NewMockCache()

	c := NewClient(srv.URL, 0)
	c.Cache = mc

	_, err := c.Fetch(context.Background(), "1")
	require.Error(t, err)
	assert.Equal(t, 0, mc.Sets)
}

func TestCacheFailuresFallBackToRegistry(t *testing.T) {
	srv, hits := countingServer(t, detailBody)
	mc := NewMockCache()
	mc.GetErr = errors.New("redis down")
	mc.SetErr = errors.New("redis down")

	c := NewClient(srv.URL, 0)
	c.Cache = mc

	detail, err := c.Fetch(context.Background(), "101")
	require.NoError(t, err)
	assert.NotNil(t, detail)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}
