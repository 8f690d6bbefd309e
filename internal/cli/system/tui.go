package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/workplan/internal/cli"
	"github.com/julianstephens/workplan/internal/printer"
	"github.com/julianstephens/workplan/internal/render"
	"github.com/julianstephens/workplan/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	render.ApplyColorProfile()
	model := tui.NewModel(ctx.Plan, tui.Options{
		Defaults: ctx.Config.Defaults,
		Printer:  newPrinter(ctx),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func newPrinter(ctx *cli.Context) *printer.Printer {
	return printer.New(
		printer.WithOpener(ctx.Config.Print.Opener),
		printer.WithOutputDir(ctx.Config.Print.OutputDir),
	)
}
