package main

import (
	"context"
	"fmt"

	"pathfinder/cmd/pathfinder/formview"
	"pathfinder/cmd/pathfinder/ui"
	"pathfinder/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// runForm starts the interactive form.
func (c *cli) runForm(cmd *cobra.Command) error {
	page, err := c.loadPage()
	if err != nil {
		return err
	}

	// Cancelled on exit so an in-flight exchange does not outlive the program.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model, err := formview.NewModel(formview.Config{
		Page:      page,
		Predictor: c.newClient(),
		Styles:    ui.NewStyles(ui.ThemeByName(c.cfg.UI.Theme)),
		Context:   ctx,
		Markdown:  true,
	})
	if err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	timer := logging.StartTimer(logging.CategoryUI, "form session")
	defer timer.Stop()

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("form exited: %w", err)
	}
	return nil
}
