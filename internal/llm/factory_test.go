package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/egograph/internal/config"
)

func TestNewClientDisabled(t *testing.T) {
	c, err := NewClient(context.Background(), config.LLMConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewClientProviders(t *testing.T) {
	c, err := NewClient(context.Background(), config.LLMConfig{Provider: "OpenAI", APIKey: "k"})
	require.NoError(t, err)
	oc, ok := c.(*OpenAIClient)
	require.True(t, ok)
	assert.Equal(t, defaultOpenAIModel, oc.model)
	assert.True(t, oc.JSONMode)

	c, err = NewClient(context.Background(), config.LLMConfig{Provider: "claude", Model: "claude-x"})
	require.NoError(t, err)
	cc, ok := c.(*ClaudeClient)
	require.True(t, ok)
	assert.Equal(t, "claude-x", cc.model)

	c, err = NewClient(context.Background(), config.LLMConfig{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	oc, ok = c.(*OpenAIClient)
	require.True(t, ok)
	assert.Equal(t, "llama3", oc.model)
	assert.False(t, oc.JSONMode)
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), config.LLMConfig{Provider: "markov"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported llm provider")
}
