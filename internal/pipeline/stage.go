package pipeline

import (
	"context"
)

// Stage is the interface that all pipeline stages must implement.
// Stages are the core abstraction - each transforms the run state in place
// and records anything noteworthy on its report.
type Stage interface {
	// Identity
	Name() string           // e.g., "reading-order", "classify"
	Dependencies() []string // Stages that must complete first

	// Description returns a one-line summary shown by the stages command.
	Description() string

	// Run executes the stage against the run state. A returned error aborts
	// the run; per-entity problems are recorded on the report instead.
	Run(ctx context.Context, st *State) error
}
