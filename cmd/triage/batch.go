package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/triage/internal/reports"
	"github.com/cognicore/triage/pkg/triage"
	"github.com/cognicore/triage/pkg/triage/config"
)

type batchRecord struct {
	ID     string         `json:"id"`
	Result *triage.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (a *app) batchCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Analyze a JSONL file of reports, writing one JSON result per line",
		Long: `Reads reports from a JSON Lines file ("-" for stdin), one object per line:

  {"id": "r1", "title": "Bus late", "description": "..."}

and writes one line per report, in input order, with either a result or an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.runBatch(cmd.Context(), input)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, it := range items {
				rec := batchRecord{ID: it.Report.ID}
				if it.Err != nil {
					rec.Error = it.Err.Error()
				} else {
					res := it.Result
					rec.Result = &res
				}
				if err := enc.Encode(rec); err != nil {
					return fmt.Errorf("write result: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "JSONL file of reports (required)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// runBatch loads and analyzes every report in input.
func (a *app) runBatch(ctx context.Context, input string) ([]triage.Item, error) {
	engine, cfg, err := a.engine()
	if err != nil {
		return nil, err
	}
	return analyzeFile(ctx, engine, cfg, input, a.logger)
}

func analyzeFile(ctx context.Context, engine *triage.Engine, cfg config.Config, input string, log *zap.Logger) ([]triage.Item, error) {
	rs, err := reports.LoadFromJSONL(input, log)
	if err != nil {
		return nil, err
	}
	if cfg.HTML {
		rs = reports.StripHTML(rs)
	}

	items, err := engine.AnalyzeBatch(ctx, rs, cfg.Workers)
	if err != nil {
		return nil, err
	}
	log.Info("batch analyzed", zap.String("input", input), zap.Int("reports", len(items)))
	return items, nil
}
