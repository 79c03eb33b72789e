package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/triage/pkg/triage/digest"
)

func (a *app) digestCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Summarize a JSONL file of reports by category, priority, sentiment and department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.runBatch(cmd.Context(), input)
			if err != nil {
				return err
			}

			agg := digest.New()
			for _, it := range items {
				if it.Err != nil {
					a.logger.Warn("skipping report", zap.String("id", it.Report.ID), zap.Error(it.Err))
					continue
				}
				agg.Add(it.Result)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(agg.Snapshot())
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "JSONL file of reports (required)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
