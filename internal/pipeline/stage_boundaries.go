package pipeline

import (
	"context"
	"fmt"

	"github.com/dmfielding/bestiary/internal/statblock"
)

// BoundaryStage partitions the ordered fragment stream into per-entity
// groups, stitching bodies across page breaks.
type BoundaryStage struct{}

func (s *BoundaryStage) Name() string           { return "boundaries" }
func (s *BoundaryStage) Dependencies() []string { return []string{"reading-order"} }
func (s *BoundaryStage) Description() string {
	return "Detect entity boundaries in the fragment stream"
}

func (s *BoundaryStage) Run(ctx context.Context, st *State) error {
	detector, err := statblock.NewDetector(st.Config.ToBoundaryConfig())
	if err != nil {
		return fmt.Errorf("failed to build boundary detector: %w", err)
	}

	st.Groups = detector.Detect(st.Fragments)
	st.Report.Entities = len(st.Groups)

	if len(st.Groups) == 0 {
		st.Report.Warnf("", s.Name(), "no entity headers found in %d fragments", len(st.Fragments))
		return nil
	}

	minFrags := st.Config.Detect.MinFragments
	for _, g := range st.Groups {
		if minFrags > 0 && len(g.Fragments) < minFrags {
			st.Report.Warnf(g.Name, s.Name(), "entity has only %d fragments", len(g.Fragments))
		}
	}

	st.Logger.Debug("entities detected", "count", len(st.Groups))
	return nil
}
