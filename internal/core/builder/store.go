package builder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agenthands/egograph/internal/core/model"
	"github.com/agenthands/egograph/internal/errs"
)

// Save writes g as node-link JSON to path, replacing whatever was there.
// The write is not atomic; the file is regenerated on every run.
func Save(path string, g *model.Graph) error {
	const op = "builder.Save"

	data, err := g.NodeLink().Marshal()
	if err != nil {
		return errs.Build(op, fmt.Errorf("failed to encode graph: %w", err))
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.Build(op, fmt.Errorf("failed to create output directory: %w", err))
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Build(op, fmt.Errorf("failed to write %s: %w", path, err))
	}
	return nil
}

// Load reads a file written by Save.
func Load(path string) (*model.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	nl, err := model.UnmarshalNodeLink(data)
	if err != nil {
		return nil, err
	}
	return nl.ToGraph()
}
