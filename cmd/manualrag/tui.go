package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"manualrag/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse search results interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			model, stop, err := newTUIModel(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer stop()

			if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
}

// newTUIModel wires the retrieval service into the browser model.
func newTUIModel(ctx context.Context, a *app) (tui.Model, func(), error) {
	svc, stop, err := buildService(ctx, a.cfg, a.logger)
	if err != nil {
		return tui.Model{}, stop, err
	}
	summary := fmt.Sprintf("dir=%s chunk=%d %s", a.cfg.Documents.Dir, a.cfg.Chunker.Size, svc.Describe())
	return tui.New(svc, summary), stop, nil
}
