package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/triage/pkg/triage/lexicon"
)

func (a *app) lexiconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect the lexicon",
	}
	cmd.AddCommand(a.lexiconLintCmd(), a.lexiconDumpCmd())
	return cmd
}

func (a *app) lexiconLintCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report lexicon entries that can never match or match surprisingly",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := a.engine()
			if err != nil {
				return err
			}
			lex := engine.Lexicon()

			st := lex.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d categories, %d keywords, %d phrases, %d priority words, %d sentiment words\n",
				st.Categories, st.Keywords, st.Phrases, st.PriorityWords, st.SentimentWords)

			findings := lex.Lint()
			for _, f := range findings {
				fmt.Fprintln(out, f)
			}
			if strict && len(findings) > 0 {
				return fmt.Errorf("%d lint findings", len(findings))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when there are findings")
	return cmd
}

func (a *app) lexiconDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the lexicon in use as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := a.engine()
			if err != nil {
				return err
			}
			data, err := dumpLexicon(engine.Lexicon())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func dumpLexicon(lex *lexicon.Lexicon) ([]byte, error) {
	data, err := lex.Source().Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal lexicon: %w", err)
	}
	return data, nil
}
