package main

import (
	"github.com/spf13/cobra"

	"github.com/dmfielding/bestiary/internal/cli"
	"github.com/dmfielding/bestiary/internal/ingest"
	"github.com/dmfielding/bestiary/internal/layout"
)

var fragmentsPages string

var fragmentsCmd = &cobra.Command{
	Use:   "fragments <pdf>",
	Short: "Dump the ordered fragment stream for a page range",
	Long: `Fragments prints the normalized, reading-ordered text fragments the
pipeline sees, with font name, size, and position.

Use it to measure the layout constants for a new printing: the column
midpoint and the header/body font-size tiers.

Examples:
  bestiary fragments bestiary.pdf --pages 273
  bestiary fragments bestiary.pdf --pages 273-275 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := newLogger()

		mgr, err := getConfig()
		if err != nil {
			return err
		}
		cfg := mgr.Get()

		first, last := cfg.Pages.First, cfg.Pages.Last
		if fragmentsPages != "" {
			first, last, err = parsePageRange(fragmentsPages)
			if err != nil {
				return err
			}
		}

		result, err := ingest.Extract(ctx, ingest.Request{
			PDFPath: args[0],
			First:   first,
			Last:    last,
			Workers: cfg.Workers(),
			Logger:  log,
		})
		if err != nil {
			return err
		}

		ordered := layout.Normalize(result.Fragments, cfg.ToLayoutConfig())
		return cli.Output(ordered)
	},
}

func init() {
	fragmentsCmd.Flags().StringVar(&fragmentsPages, "pages", "", "page range to dump, e.g. 273-275 (default: configured range)")

	rootCmd.AddCommand(fragmentsCmd)
}
