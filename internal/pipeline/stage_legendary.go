package pipeline

import (
	"context"

	"github.com/dmfielding/bestiary/internal/normalize"
)

// LegendaryStage splits legendary actions mis-filed under Actions into the
// legendary list and regenerates the canonical legendary preamble.
type LegendaryStage struct{}

func (s *LegendaryStage) Name() string           { return "legendary" }
func (s *LegendaryStage) Dependencies() []string { return []string{"mechanics", "defenses"} }
func (s *LegendaryStage) Description() string {
	return "Split legendary actions out of the action list"
}

func (s *LegendaryStage) Run(ctx context.Context, st *State) error {
	forEachRecord(ctx, st.Config.Workers(), st.Records, normalize.SplitLegendary)
	return ctx.Err()
}
