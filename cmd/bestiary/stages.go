package main

import (
	"github.com/spf13/cobra"

	"github.com/dmfielding/bestiary/internal/cli"
	"github.com/dmfielding/bestiary/internal/pipeline"
)

// stageInfo describes one registered pipeline stage.
type stageInfo struct {
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List pipeline stages in execution order",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := pipeline.DefaultRegistry()
		if err != nil {
			return err
		}
		ordered, err := reg.GetOrdered()
		if err != nil {
			return err
		}

		infos := make([]stageInfo, 0, len(ordered))
		for _, s := range ordered {
			infos = append(infos, stageInfo{
				Name:         s.Name(),
				Description:  s.Description(),
				Dependencies: s.Dependencies(),
			})
		}
		return cli.Output(infos)
	},
}

func init() {
	rootCmd.AddCommand(stagesCmd)
}
