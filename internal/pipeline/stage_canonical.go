package pipeline

import (
	"context"

	"github.com/dmfielding/bestiary/internal/normalize"
)

// CanonicalStage assigns stable IDs, derives simple names, de-duplicates,
// and re-normalizes defense lists. It runs last and single-threaded because
// duplicate detection needs the whole record set in order.
type CanonicalStage struct{}

func (s *CanonicalStage) Name() string { return "canonicalize" }
func (s *CanonicalStage) Dependencies() []string {
	return []string{"polish"}
}
func (s *CanonicalStage) Description() string {
	return "Assign stable ids and drop invalid or duplicate records"
}

func (s *CanonicalStage) Run(ctx context.Context, st *State) error {
	kind := st.Config.Defaults.Kind
	if kind == "" {
		kind = "monster"
	}

	kept, issues := normalize.Canonicalize(st.Records, kind)
	for _, issue := range issues {
		st.Report.Skipf(issue.Record, s.Name(), "%s", issue.Message)
	}
	st.Records = kept

	st.Logger.Debug("records canonicalized", "kept", len(kept), "dropped", len(issues))
	return nil
}
