package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/cognicore/triage/pkg/triage"
	"github.com/cognicore/triage/pkg/triage/ingest"
)

func (a *app) analyzeCmd() *cobra.Command {
	var (
		report  ingest.Report
		explain bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a single report",
		Example: `  triage analyze --title "Bus late" --description "The shuttle driver skipped our stop"
  triage analyze --title "Wifi down" --explain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cfg, err := a.engine()
			if err != nil {
				return err
			}
			if cfg.HTML {
				report.Title = ingest.StripHTML(report.Title)
				report.Description = ingest.StripHTML(report.Description)
			}
			if err := report.Validate(); err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if !explain {
				return enc.Encode(engine.Analyze(report.Title, report.Description))
			}
			res, tr := engine.Explain(report.Title, report.Description)
			return enc.Encode(struct {
				Result triage.Result `json:"result"`
				Trace  triage.Trace  `json:"trace"`
			}{res, tr})
		},
	}

	cmd.Flags().StringVar(&report.Title, "title", "", "report title")
	cmd.Flags().StringVar(&report.Description, "description", "", "report description")
	cmd.Flags().BoolVar(&explain, "explain", false, "include the matches behind each verdict")
	return cmd
}
