package console

import (
	"github.com/agenthands/egograph/internal/core/model"
	"github.com/agenthands/egograph/internal/errs"
)

// Select returns the id of the candidate with the given 1-based number.
func Select(candidates []model.Candidate, index int) (string, error) {
	if index < 1 || index > len(candidates) {
		return "", errs.Selection("console.Select", &errs.InvalidSelectionError{
			Index: index,
			Count: len(candidates),
		})
	}
	return candidates[index-1].ID, nil
}
