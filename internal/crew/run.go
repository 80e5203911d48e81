// Package crew composes ranked three-officer bridge crews from slot scores.
package crew

import (
	"github.com/google/uuid"
	"github.com/jonathan/majel/internal/types"
)

// Run is the context of one recommendation call. It is created per call and never shared, so
// run-scoped state such as the fallback warning cannot leak between concurrent callers.
type Run struct {
	ID        uuid.UUID
	IntentKey types.IntentKey
	// Warnings are run-level reasons, each emitted exactly once per run.
	Warnings []string
	Results  []types.RecommendationResult
	// Evaluated is the number of trios scored before truncation to the limit.
	Evaluated int
	Fallback  bool

	warned map[string]bool
}

func newRun(intent types.IntentKey) *Run {
	return &Run{
		ID:        uuid.New(),
		IntentKey: intent,
		Results:   []types.RecommendationResult{},
		warned:    make(map[string]bool),
	}
}

// warn records a run-level warning; repeats are ignored.
func (r *Run) warn(message string) {
	if r.warned[message] {
		return
	}
	r.warned[message] = true
	r.Warnings = append(r.Warnings, message)
}
