package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"vtriage/internal/shared"
	"vtriage/internal/ui"
)

// TUI launches the interactive terminal UI for triaging videos.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.svc == nil {
		return fmt.Errorf("%w: triage service not initialized", shared.ErrServiceUnavailable)
	}
	if r.engine == nil {
		return fmt.Errorf("%w: triage engine not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/vtriage-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.svc, r.engine, ui.Options{
		Status:     cmd.String("status"),
		ScrollZone: r.config.Triage.ScrollZone,
		ScrollStep: r.config.Triage.ScrollStep,
	})

	// Cell motion tracking is required for drag selection.
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// tuiCommand returns the top-level TUI command for interactive triage.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for triaging videos",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "status",
				Usage: "Initial listing (inbox, saved, discarded)",
				Value: "inbox",
			},
		},
		Action: r.TUI,
	}
}
