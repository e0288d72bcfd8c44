package pipeline

import (
	"context"

	"github.com/dmfielding/bestiary/internal/defense"
	"github.com/dmfielding/bestiary/internal/statblock"
)

// DefenseStage parses the raw defense strings captured by the classifier
// into typed entries with qualifiers.
type DefenseStage struct{}

func (s *DefenseStage) Name() string           { return "defenses" }
func (s *DefenseStage) Dependencies() []string { return []string{"classify"} }
func (s *DefenseStage) Description() string {
	return "Parse defense strings into typed entries"
}

func (s *DefenseStage) Run(ctx context.Context, st *State) error {
	forEachRecord(ctx, st.Config.Workers(), st.Records, func(rec *statblock.Record) {
		rec.DamageVulnerabilities = defense.ParseDefenses(rec.RawVulnerabilities)
		rec.DamageResistances = defense.ParseDefenses(rec.RawResistances)
		rec.DamageImmunities = defense.ParseDefenses(rec.RawImmunities)
		rec.ConditionImmunities = defense.ParseConditions(rec.RawConditionImmunities)
	})
	return ctx.Err()
}
