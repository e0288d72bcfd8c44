// Package report accumulates run statistics and structural warnings with
// entity attribution. Parse misses stay silent and never land here; only
// boundary and classification problems do.
package report

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Warning is one structural problem attributed to an entity and the stage
// that noticed it.
type Warning struct {
	Entity  string `json:"entity,omitempty" yaml:"entity,omitempty"`
	Stage   string `json:"stage" yaml:"stage"`
	Message string `json:"message" yaml:"message"`
}

// Report is the summary of one extraction run. Stages append warnings
// concurrently; everything else is written by the single-threaded runner.
type Report struct {
	mu sync.Mutex

	RunID      uuid.UUID `json:"run_id" yaml:"run_id"`
	Source     string    `json:"source" yaml:"source"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`

	Pages     int `json:"pages" yaml:"pages"`
	Fragments int `json:"fragments" yaml:"fragments"`
	Entities  int `json:"entities" yaml:"entities"`
	Skipped   int `json:"skipped" yaml:"skipped"`

	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// New starts a report for one source document.
func New(source string) *Report {
	return &Report{
		RunID:     uuid.New(),
		Source:    source,
		StartedAt: time.Now().UTC(),
	}
}

// Warnf records a structural warning for an entity. Entity may be empty for
// document-level warnings.
func (r *Report) Warnf(entity, stage, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, Warning{
		Entity:  entity,
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
	})
}

// Skipf records a fatal-for-entity problem: the entity was dropped.
func (r *Report) Skipf(entity, stage, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Skipped++
	r.Warnings = append(r.Warnings, Warning{
		Entity:  entity,
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
	})
}

// Finish stamps the completion time.
func (r *Report) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FinishedAt = time.Now().UTC()
}

// WarningCount returns the number of accumulated warnings.
func (r *Report) WarningCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Warnings)
}
