package pipeline

import (
	"context"

	"github.com/dmfielding/bestiary/internal/mechanics"
)

// MechanicsStage derives structured attack, save, and area data from each
// record's sub-record text. Parse misses leave sub-records text-only.
type MechanicsStage struct{}

func (s *MechanicsStage) Name() string           { return "mechanics" }
func (s *MechanicsStage) Dependencies() []string { return []string{"classify"} }
func (s *MechanicsStage) Description() string {
	return "Parse combat text into structured attack and save data"
}

func (s *MechanicsStage) Run(ctx context.Context, st *State) error {
	forEachRecord(ctx, st.Config.Workers(), st.Records, mechanics.EnrichRecord)
	return ctx.Err()
}
