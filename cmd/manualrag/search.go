package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"manualrag/internal/scorer"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		topK       int
		scorerType string
		showScores bool
	)
	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Print the manual passages that best match a query",
		Long: `Loads the manuals, splits them into fixed-size chunks and prints the
top-k passages for the query, separated by "---".`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("top-k") {
				a.cfg.Retrieval.TopK = topK
			}
			if cmd.Flags().Changed("scorer") {
				a.cfg.Scorer.Type = scorerType
			}
			svc, stop, err := buildService(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer stop()

			results, err := svc.SearchScored(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No passages found.")
				return nil
			}
			for i, r := range results {
				if i > 0 {
					fmt.Fprintln(out, "---")
				}
				if showScores {
					fmt.Fprintf(out, "[%d] %s#%d score=%.3f\n", i+1, r.Chunk.DocumentID, r.Chunk.Index, r.Score)
				}
				fmt.Fprintln(out, r.Chunk.Text)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "number of passages to return (overrides config)")
	cmd.Flags().StringVar(&scorerType, "scorer", "", fmt.Sprintf("similarity strategy: %s (overrides config)", strings.Join(scorer.Types(), ", ")))
	cmd.Flags().BoolVar(&showScores, "scores", false, "print document, chunk index and score above each passage")
	return cmd
}
