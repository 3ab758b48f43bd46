package summary

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agenthands/egograph/internal/config"
	"github.com/agenthands/egograph/internal/core/common"
	"github.com/agenthands/egograph/internal/core/model"
	"github.com/agenthands/egograph/internal/llm"
)

// MetaKey is the node-link graph attribute the summary is stored under.
const MetaKey = "summary"

// ChunkSize caps how many neighbours go into one prompt.
const ChunkSize = 40

type Summarizer struct {
	LLM    llm.LLMClient
	Prompt string
}

func NewSummarizer(llmClient llm.LLMClient, prompts config.SummaryPrompts) *Summarizer {
	prompt := prompts.Ego
	if prompt == "" {
		prompt = config.DefaultEgoPrompt
	}
	return &Summarizer{
		LLM:    llmClient,
		Prompt: prompt,
	}
}

// SummarizeEgo describes the subject's network. Large networks are split into
// chunks, summarized separately and then merged in one more call.
func (s *Summarizer) SummarizeEgo(ctx context.Context, g *model.Graph) (string, error) {
	subject := "(unknown)"
	for _, n := range g.Nodes {
		if n.Kind == model.KindEgo {
			subject = n.Label
			break
		}
	}

	neighbours := neighbourLines(g)
	relations := relationLines(g)

	if len(neighbours) <= ChunkSize {
		return s.generate(ctx, subject, neighbours, relations)
	}

	var partials []string
	for i := 0; i < len(neighbours); i += ChunkSize {
		end := i + ChunkSize
		if end > len(neighbours) {
			end = len(neighbours)
		}
		partial, err := s.generate(ctx, subject, neighbours[i:end], relations)
		if err != nil {
			return "", err
		}
		partials = append(partials, fmt.Sprintf("Part %d: %s", len(partials)+1, partial))
	}

	return s.generate(ctx, subject, partials, relations)
}

func (s *Summarizer) generate(ctx context.Context, subject string, neighbours, relations []string) (string, error) {
	prompt := fmt.Sprintf(s.Prompt, subject, bulletList(neighbours), bulletList(relations))

	response, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate ego summary: %w", err)
	}

	result, err := common.ParseJSON[model.EgoSummary](response)
	if err == nil && result.Summary != "" {
		return result.Summary, nil
	}
	// Some models ignore the JSON instruction; plain text is still usable.
	return strings.TrimSpace(response), nil
}

func neighbourLines(g *model.Graph) []string {
	var lines []string
	for _, n := range g.Nodes {
		if n.Kind == model.KindEgo {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s (%s)", n.Label, n.Kind))
	}
	return lines
}

// relationLines counts relation labels, e.g. "reprezentant x3".
func relationLines(g *model.Graph) []string {
	counts := make(map[string]int)
	for _, e := range g.Edges {
		counts[e.Relation]++
	}
	var lines []string
	for relation, n := range counts {
		lines = append(lines, fmt.Sprintf("%s x%d", relation, n))
	}
	sort.Strings(lines)
	return lines
}

func bulletList(lines []string) string {
	if len(lines) == 0 {
		return "- (none)\n"
	}
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString("- ")
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	return sb.String()
}
