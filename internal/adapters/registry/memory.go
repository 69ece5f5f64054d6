package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/sireline/internal/domain/traits"
	"github.com/okian/sireline/pkg/metrics"
)

// MemoryStore implements Store with a mutex-guarded map. Outcomes are
// copied on the way in and out so callers cannot alias internal state.
type MemoryStore struct {
	mu       sync.RWMutex
	outcomes map[string]traits.Outcome
}

// NewMemoryStore creates an empty in-memory outcome store.
func NewMemoryStore(_ context.Context) *MemoryStore {
	return &MemoryStore{
		outcomes: make(map[string]traits.Outcome),
	}
}

// Record stores the outcome assigned to a foal.
func (s *MemoryStore) Record(_ context.Context, foalID string, outcome traits.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.outcomes[foalID]; ok {
		return fmt.Errorf("record %s: %w", foalID, ErrDuplicateFoal)
	}
	s.outcomes[foalID] = copyOutcome(outcome)
	metrics.UpdateFoalsRegistered(len(s.outcomes))
	return nil
}

// Outcome returns the outcome recorded for a foal.
func (s *MemoryStore) Outcome(_ context.Context, foalID string) (traits.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	outcome, ok := s.outcomes[foalID]
	if !ok {
		return traits.Outcome{}, fmt.Errorf("outcome %s: %w", foalID, ErrNotFound)
	}
	return copyOutcome(outcome), nil
}

// TraitCounts returns how many foals carry each trait name.
func (s *MemoryStore) TraitCounts(_ context.Context) map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, outcome := range s.outcomes {
		for _, n := range outcome.Positive {
			counts[string(n)]++
		}
		for _, n := range outcome.Negative {
			counts[string(n)]++
		}
		for _, n := range outcome.Hidden {
			counts[string(n)]++
		}
	}
	return counts
}

// Count returns the number of foals with recorded outcomes.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.outcomes)
}

func copyOutcome(o traits.Outcome) traits.Outcome {
	return traits.Outcome{
		Positive: append([]traits.Name(nil), o.Positive...),
		Negative: append([]traits.Name(nil), o.Negative...),
		Hidden:   append([]traits.Name(nil), o.Hidden...),
	}
}
