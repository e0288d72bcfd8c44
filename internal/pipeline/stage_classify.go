package pipeline

import (
	"context"

	"github.com/dmfielding/bestiary/internal/statblock"
)

// ClassifyStage turns each entity group into an unnormalized record. A group
// that cannot yield a record is skipped with a report entry; the run
// continues.
type ClassifyStage struct{}

func (s *ClassifyStage) Name() string           { return "classify" }
func (s *ClassifyStage) Dependencies() []string { return []string{"boundaries"} }
func (s *ClassifyStage) Description() string {
	return "Classify fragments into stat fields and sub-records"
}

func (s *ClassifyStage) Run(ctx context.Context, st *State) error {
	classifier := statblock.NewClassifier(st.Config.ToClassifyConfig())

	// One slot per group keeps output order deterministic under the pool.
	results := make([]*statblock.Record, len(st.Groups))
	forEachIndex(ctx, st.Config.Workers(), len(st.Groups), func(i int) {
		g := st.Groups[i]
		rec, err := classifier.Classify(g)
		if err != nil {
			st.Report.Skipf(g.Name, s.Name(), "%v", err)
			return
		}
		results[i] = rec
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	records := make([]*statblock.Record, 0, len(results))
	for _, rec := range results {
		if rec == nil {
			continue
		}
		s.checkCoreStats(st, rec)
		records = append(records, rec)
	}
	st.Records = records

	st.Logger.Debug("records classified", "count", len(st.Records))
	return nil
}

// checkCoreStats records structural warnings for the stat fields every
// well-formed block carries.
func (s *ClassifyStage) checkCoreStats(st *State, rec *statblock.Record) {
	if rec.ArmorClass == 0 {
		st.Report.Warnf(rec.Name, s.Name(), "missing armor class")
	}
	if rec.HitPoints == 0 {
		st.Report.Warnf(rec.Name, s.Name(), "missing hit points")
	}
	if rec.Strength == 0 {
		st.Report.Warnf(rec.Name, s.Name(), "missing ability scores")
	}
}
