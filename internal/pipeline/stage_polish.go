package pipeline

import (
	"context"

	"github.com/dmfielding/bestiary/internal/normalize"
)

// PolishStage repairs extraction artifacts in sub-record text and strips
// legendary boilerplate sentences.
type PolishStage struct{}

func (s *PolishStage) Name() string           { return "polish" }
func (s *PolishStage) Dependencies() []string { return []string{"legendary"} }
func (s *PolishStage) Description() string {
	return "Repair extraction artifacts in sub-record text"
}

func (s *PolishStage) Run(ctx context.Context, st *State) error {
	forEachRecord(ctx, st.Config.Workers(), st.Records, normalize.PolishRecord)
	return ctx.Err()
}
