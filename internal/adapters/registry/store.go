// Package registry defines the run-scoped foal outcome store and errors.
//
// The registry is not persistence: it holds the outcomes of one batch run
// so drivers can collect results and stats after the workers drain.
package registry

import (
	"context"

	"github.com/okian/sireline/internal/domain/traits"
)

// Store provides read/write access to assigned foal outcomes.
type Store interface {
	// Record stores the outcome assigned to a foal.
	// Returns ErrDuplicateFoal if the foal already has an outcome.
	Record(ctx context.Context, foalID string, outcome traits.Outcome) error

	// Outcome returns the outcome recorded for a foal.
	// Returns ErrNotFound if the foal is unknown.
	Outcome(ctx context.Context, foalID string) (traits.Outcome, error)

	// TraitCounts returns how many foals carry each trait name.
	TraitCounts(ctx context.Context) map[string]int

	// Count returns the number of foals with recorded outcomes.
	Count(ctx context.Context) int
}
