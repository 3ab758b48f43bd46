package core

import (
	"context"

	"github.com/agenthands/egograph/internal/core/model"
)

type MockRegistry struct {
	Candidates []model.Candidate
	Detail     *model.Detail
	SearchErr  error
	FetchErr   error

	Queries []string
	Fetched []string
}

func (m *MockRegistry) Search(ctx context.Context, query string) ([]model.Candidate, error) {
	m.Queries = append(m.Queries, query)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.Candidates, nil
}

func (m *MockRegistry) Fetch(ctx context.Context, id string) (*model.Detail, error) {
	m.Fetched = append(m.Fetched, id)
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	return m.Detail, nil
}

type MockLLM struct {
	Response string
	Err      error
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
