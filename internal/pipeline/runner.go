package pipeline

import (
	"context"
	"fmt"
	"time"
)

// DefaultRegistry returns a registry populated with the standard extraction
// stages.
func DefaultRegistry() (*Registry, error) {
	reg := NewRegistry()
	stages := []Stage{
		&OrderStage{},
		&BoundaryStage{},
		&ClassifyStage{},
		&MechanicsStage{},
		&DefenseStage{},
		&LegendaryStage{},
		&PolishStage{},
		&CanonicalStage{},
	}
	for _, s := range stages {
		if err := reg.Register(s); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Run executes every registered stage against st in dependency order. The
// run report is finished on return, success or not.
func Run(ctx context.Context, reg *Registry, st *State) error {
	defer st.Report.Finish()

	ordered, err := reg.GetOrdered()
	if err != nil {
		return fmt.Errorf("failed to order stages: %w", err)
	}

	for _, stage := range ordered {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		if err := stage.Run(ctx, st); err != nil {
			return fmt.Errorf("stage %s failed: %w", stage.Name(), err)
		}
		st.Logger.Info("stage complete",
			"stage", stage.Name(),
			"duration", time.Since(start),
			"records", len(st.Records),
		)
	}

	return nil
}
