package registry

import (
	"context"
)

// MockCache is an in-memory cache.Cache for tests.
type MockCache struct {
	Data   map[string][]byte
	GetErr error
	SetErr error
	Sets   int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	v, ok := m.Data[key]
	return v, ok, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte) error {
	m.Sets++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = value
	return nil
}

func (m *MockCache) Close() error {
	return nil
}
