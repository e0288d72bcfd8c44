package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmfielding/bestiary/internal/cli"
	"github.com/dmfielding/bestiary/internal/dataset"
	"github.com/dmfielding/bestiary/internal/schema"
)

// validateResult is one record's schema failure.
type validateResult struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string `json:"name" yaml:"name"`
	Error string `json:"error" yaml:"error"`
}

// validateSummary is what the validate command prints.
type validateSummary struct {
	Dataset  string           `json:"dataset" yaml:"dataset"`
	Checked  int              `json:"checked" yaml:"checked"`
	Failed   int              `json:"failed" yaml:"failed"`
	Failures []validateResult `json:"failures,omitempty" yaml:"failures,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate [dataset]",
	Short: "Validate an extracted dataset against the Creature schema",
	Long: `Validate checks every record of an extracted dataset against the embedded
Creature JSON Schema.

With no argument, the configured default dataset under the bestiary home
is checked.

Examples:
  bestiary validate                          # Default dataset
  bestiary validate out/bestiary.json        # Explicit file`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			mgr, err := getConfig()
			if err != nil {
				return err
			}
			h, err := getHome()
			if err != nil {
				return err
			}
			cfg := mgr.Get()
			path = resolveDatasetPath(cfg, h)
		}

		records, err := dataset.Load(path)
		if err != nil {
			return err
		}
		s, err := schema.Get("Creature")
		if err != nil {
			return err
		}

		summary := validateSummary{Dataset: path, Checked: len(records)}
		for _, rec := range records {
			if err := s.ValidateRecord(rec); err != nil {
				summary.Failed++
				summary.Failures = append(summary.Failures, validateResult{
					ID:    rec.ID,
					Name:  rec.Name,
					Error: err.Error(),
				})
			}
		}

		if err := cli.Output(summary); err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d records failed validation", summary.Failed, summary.Checked)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
