package pipeline

import (
	"log/slog"

	"github.com/dmfielding/bestiary/internal/config"
	"github.com/dmfielding/bestiary/internal/layout"
	"github.com/dmfielding/bestiary/internal/report"
	"github.com/dmfielding/bestiary/internal/statblock"
)

// State carries one run's data between stages. The runner owns it and
// stages mutate it in place.
type State struct {
	Config *config.Config // active configuration
	Logger *slog.Logger   // run logger, never nil after NewState
	Report *report.Report // accumulates counts and warnings

	Fragments []layout.Fragment   // ordered text fragments, set by reading-order
	Groups    []statblock.Group   // per-entity fragment groups, set by boundaries
	Records   []*statblock.Record // reconstructed records, set by classify onward
}

// NewState builds a run state over already extracted fragments.
func NewState(cfg *config.Config, source string, frags []layout.Fragment, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{
		Config:    cfg,
		Logger:    logger,
		Report:    report.New(source),
		Fragments: frags,
	}
}
