package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vidnexus/internal/shared"
	"github.com/desertthunder/vidnexus/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal client.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.Log.File
	if logPath == "" {
		logPath = shared.DefaultLogFile
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.config.LogLevel())
	r.SetLogger(fileLogger)

	if err := r.connect(); err != nil {
		return err
	}

	model := ui.NewModel(ctx, ui.Options{
		History: r.history,
		Session: r.gateway.Store(),
		Notes:   r.notes,
		Auth:    r.auth,
		Start:   cmd.String("start"),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
