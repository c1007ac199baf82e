package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Automatic backup on TUI startup, before any interactive mutation.
	ctx.PerformAutomaticBackup()

	model, err := tui.NewModel(ctx.Tracker)
	if err != nil {
		return fmt.Errorf("failed to initialize TUI: %w", err)
	}
	defer model.Shutdown()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
