package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type ExecutedQuery struct {
	Query  string
	Params map[string]interface{}
}

// MockDriver records every query instead of talking to a database.
type MockDriver struct {
	Queries    []ExecutedQuery
	MockResult neo4j.EagerResult
	Err        error
	IndexErr   error
	Closed     bool
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, ExecutedQuery{Query: query, Params: params})
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return m.IndexErr
}

func (m *MockDriver) Close(ctx context.Context) error {
	m.Closed = true
	return nil
}
