package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agenthands/egograph/internal/core/builder"
	"github.com/agenthands/egograph/internal/core/community"
	"github.com/agenthands/egograph/internal/core/model"
	"github.com/agenthands/egograph/internal/core/summary"
	"github.com/agenthands/egograph/internal/driver"
	"github.com/agenthands/egograph/internal/errs"
)

// Registry is what EgoGraph needs from the KRS API client.
type Registry interface {
	Search(ctx context.Context, query string) ([]model.Candidate, error)
	Fetch(ctx context.Context, id string) (*model.Detail, error)
}

// EgoGraph runs one search-select-fetch-build cycle. Detector, Summarizer
// and Driver are optional.
type EgoGraph struct {
	Registry   Registry
	Builder    *builder.Builder
	Detector   community.CommunityDetector
	Summarizer *summary.Summarizer
	Driver     driver.GraphDriver
	OutputPath string

	NewID func() string
	Now   func() time.Time
}

func NewEgoGraph(registry Registry, b *builder.Builder, outputPath string) *EgoGraph {
	return &EgoGraph{
		Registry:   registry,
		Builder:    b,
		OutputPath: outputPath,
		NewID:      uuid.NewString,
		Now:        time.Now,
	}
}

func (e *EgoGraph) Search(ctx context.Context, query string) ([]model.Candidate, error) {
	candidates, err := e.Registry.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	log.Info().Str("query", query).Int("candidates", len(candidates)).Msg("search finished")
	return candidates, nil
}

// Build fetches the subject's graph layer and writes it to OutputPath.
// A failed summary only logs a warning; every other stage is fatal.
func (e *EgoGraph) Build(ctx context.Context, subjectID string) (*model.Graph, error) {
	runID := e.NewID()
	logger := log.With().Str("run_id", runID).Str("subject", subjectID).Logger()

	detail, err := e.Registry.Fetch(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	g, err := e.Builder.Build(detail, subjectID)
	if err != nil {
		return nil, err
	}
	counts := g.CountByKind()
	logger.Info().
		Int("ego", counts[model.KindEgo]).
		Int("people", counts[model.KindPerson]).
		Int("institutions", counts[model.KindInstitution]).
		Int("links", len(g.Edges)).
		Int("dangling", len(g.DanglingEdges())).
		Msg("graph built")

	if e.Detector != nil {
		n, err := community.Annotate(g, e.Detector)
		if err != nil {
			return nil, errs.Build("core.Build", fmt.Errorf("failed to detect communities: %w", err))
		}
		g.Meta["communities"] = n
		logger.Debug().Int("communities", n).Msg("communities annotated")
	}

	if e.Summarizer != nil {
		text, err := e.Summarizer.SummarizeEgo(ctx, g)
		if err != nil {
			logger.Warn().Err(err).Msg("summary skipped")
		} else {
			g.Meta[summary.MetaKey] = text
		}
	}

	g.Meta["run_id"] = runID
	g.Meta["generated_at"] = e.Now().UTC().Format(time.RFC3339)

	if e.Driver != nil {
		stats, err := driver.ExportGraph(ctx, e.Driver, g, runID)
		if err != nil {
			return nil, errs.Export("core.Build", err)
		}
		logger.Info().Int("nodes", stats.Nodes).Int("edges", stats.Edges).Msg("graph exported to memgraph")
	}

	if err := builder.Save(e.OutputPath, g); err != nil {
		return nil, err
	}
	logger.Info().Str("path", e.OutputPath).Msg("graph written")
	return g, nil
}
