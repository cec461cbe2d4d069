package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tobyfell/movx/internal/shared"
	"github.com/tobyfell/movx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for movie search and saving.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.searcher == nil {
		return fmt.Errorf("%w: search client not initialized", shared.ErrServiceUnavailable)
	}
	if r.movies == nil {
		return fmt.Errorf("%w: movie store not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/movx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.searcher, r.movies)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
