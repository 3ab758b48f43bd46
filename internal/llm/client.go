package llm

import (
	"context"
)

// systemPrompt is sent ahead of every summary request.
const systemPrompt = "You summarise public company-registry data. Stick to the facts given, do not speculate about people, and answer with JSON only."

const (
	maxSummaryTokens   = 1000
	summaryTemperature = 0.2
)

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
