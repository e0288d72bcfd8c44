package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmfielding/bestiary/internal/cli"
	"github.com/dmfielding/bestiary/internal/config"
	"github.com/dmfielding/bestiary/internal/dataset"
	"github.com/dmfielding/bestiary/internal/home"
	"github.com/dmfielding/bestiary/internal/ingest"
	"github.com/dmfielding/bestiary/internal/pipeline"
	"github.com/dmfielding/bestiary/internal/report"
	"github.com/dmfielding/bestiary/internal/schema"
	"github.com/dmfielding/bestiary/internal/statblock"
)

var (
	extractPages    string
	extractDataset  string
	extractValidate bool
	extractWatch    bool
)

// extractSummary is what the extract command prints after a run.
type extractSummary struct {
	Records     int            `json:"records" yaml:"records"`
	DatasetPath string         `json:"dataset_path" yaml:"dataset_path"`
	ReportPath  string         `json:"report_path" yaml:"report_path"`
	Report      *report.Report `json:"report" yaml:"report"`
}

var extractCmd = &cobra.Command{
	Use:   "extract <pdf>",
	Short: "Extract creature stat blocks from a PDF",
	Long: `Extract reads the source PDF, reconstructs creature stat blocks, and
writes them as a JSON dataset under the bestiary home.

The run never fails on irregular combat text; structural problems are
collected in the run report instead.

Examples:
  bestiary extract bestiary.pdf                     # Full document
  bestiary extract bestiary.pdf --pages 273-362     # Page range
  bestiary extract bestiary.pdf --validate          # Check records against the schema
  bestiary extract bestiary.pdf --watch             # Re-run when the config file changes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := newLogger()

		mgr, err := getConfig()
		if err != nil {
			return err
		}
		h, err := getHome()
		if err != nil {
			return err
		}

		if !extractWatch {
			return runExtract(ctx, mgr.Get(), h, args[0], log)
		}

		if mgr.ConfigFileUsed() == "" {
			return fmt.Errorf("--watch requires a config file (run 'bestiary config init' first)")
		}

		// Threshold tuning loop: re-run extraction whenever the config file
		// changes, until interrupted.
		changes := make(chan *config.Config, 1)
		mgr.OnChange(func(cfg *config.Config) {
			select {
			case changes <- cfg:
			default:
			}
		})
		mgr.WatchConfig()

		cfg := mgr.Get()
		for {
			if err := runExtract(ctx, cfg, h, args[0], log); err != nil {
				log.Error("extraction failed", "error", err)
			}
			log.Info("watching for config changes", "config", mgr.ConfigFileUsed())

			select {
			case <-ctx.Done():
				return nil
			case cfg = <-changes:
				log.Info("config changed, re-running extraction")
			}
		}
	},
}

// runExtract performs one full extraction pass: ingest, pipeline, dataset
// write, summary output.
func runExtract(ctx context.Context, cfg *config.Config, h *home.Dir, pdfPath string, log *slog.Logger) error {
	first, last := cfg.Pages.First, cfg.Pages.Last
	if extractPages != "" {
		var err error
		first, last, err = parsePageRange(extractPages)
		if err != nil {
			return err
		}
	}

	result, err := ingest.Extract(ctx, ingest.Request{
		PDFPath: pdfPath,
		First:   first,
		Last:    last,
		Workers: cfg.Workers(),
		Logger:  log,
	})
	if err != nil {
		return err
	}

	st := pipeline.NewState(cfg, pdfPath, result.Fragments, log)
	st.Report.Pages = result.Last - result.First + 1

	reg, err := pipeline.DefaultRegistry()
	if err != nil {
		return err
	}
	if err := pipeline.Run(ctx, reg, st); err != nil {
		return err
	}

	if extractValidate {
		if err := validateRecords(st.Records, st.Report); err != nil {
			return err
		}
	}

	datasetPath := resolveDatasetPath(cfg, h)
	if err := dataset.Write(datasetPath, st.Records); err != nil {
		return err
	}
	reportPath := h.ReportPath(st.Report.RunID.String())
	if err := dataset.WriteReport(reportPath, st.Report); err != nil {
		return err
	}

	log.Info("extraction finished",
		"records", len(st.Records),
		"warnings", st.Report.WarningCount(),
		"dataset", datasetPath,
	)

	return cli.Output(extractSummary{
		Records:     len(st.Records),
		DatasetPath: datasetPath,
		ReportPath:  reportPath,
		Report:      st.Report,
	})
}

// validateRecords checks every extracted record against the Creature schema.
// Failures land in the report; they do not abort the run.
func validateRecords(records []*statblock.Record, rep *report.Report) error {
	s, err := schema.Get("Creature")
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := s.ValidateRecord(rec); err != nil {
			rep.Warnf(rec.Name, "validate", "%v", err)
		}
	}
	return nil
}

// resolveDatasetPath returns the dataset file the run writes: the configured
// output directory when set, the home datasets directory otherwise.
func resolveDatasetPath(cfg *config.Config, h *home.Dir) string {
	name := cfg.Output.Dataset
	if name == "" {
		name = "bestiary"
	}
	if extractDataset != "" {
		name = extractDataset
	}
	if cfg.Output.Dir != "" {
		return fmt.Sprintf("%s/%s.json", strings.TrimRight(cfg.Output.Dir, "/"), name)
	}
	return h.DatasetPath(name)
}

// parsePageRange parses "273-362" or a single page "273".
func parsePageRange(s string) (int, int, error) {
	firstStr, lastStr, isRange := strings.Cut(s, "-")
	first, err := strconv.Atoi(strings.TrimSpace(firstStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page range %q", s)
	}
	if !isRange {
		return first, first, nil
	}
	last, err := strconv.Atoi(strings.TrimSpace(lastStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page range %q", s)
	}
	if last < first {
		return 0, 0, fmt.Errorf("page range %q is backwards", s)
	}
	return first, last, nil
}

func init() {
	extractCmd.Flags().StringVar(&extractPages, "pages", "", "page range to process, e.g. 273-362 (default: configured range)")
	extractCmd.Flags().StringVar(&extractDataset, "dataset", "", "dataset file stem (default: configured name)")
	extractCmd.Flags().BoolVar(&extractValidate, "validate", false, "validate extracted records against the Creature schema")
	extractCmd.Flags().BoolVar(&extractWatch, "watch", false, "re-run extraction when the config file changes")

	rootCmd.AddCommand(extractCmd)
}
