package pipeline

import (
	"context"

	"github.com/dmfielding/bestiary/internal/layout"
)

// OrderStage assigns fragments to columns and sorts them into total reading
// order. Every later stage assumes this ordering.
type OrderStage struct{}

func (s *OrderStage) Name() string           { return "reading-order" }
func (s *OrderStage) Dependencies() []string { return nil }
func (s *OrderStage) Description() string {
	return "Assign columns and sort fragments into reading order"
}

func (s *OrderStage) Run(ctx context.Context, st *State) error {
	st.Fragments = layout.Normalize(st.Fragments, st.Config.ToLayoutConfig())
	st.Report.Fragments = len(st.Fragments)
	st.Logger.Debug("fragments ordered", "count", len(st.Fragments))
	return nil
}
