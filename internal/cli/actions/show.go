package actions

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/workplan/internal/cli"
	"github.com/julianstephens/workplan/internal/models"
	"github.com/julianstephens/workplan/internal/render"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type ShowCmd struct {
	Format string `help:"Output format." enum:"text,markdown,json" default:"text"`
	Width  int    `help:"Wrap width in columns." default:"100"`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	p := ctx.Plan.Snapshot()

	switch c.Format {
	case "json":
		if p.Actions == nil {
			p.Actions = []models.Action{}
		}
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode plan: %w", err)
		}
		ctx.Printf("%s\n", data)
	case "markdown":
		render.ApplyColorProfile()
		out, err := render.RenderMarkdown(render.Markdown(p), c.Width)
		if err != nil {
			return err
		}
		ctx.Printf("%s", out)
	default:
		render.ApplyColorProfile()
		date := p.PlanDate
		if date == "" {
			date = "no date"
		}
		grid, _ := render.Terminal(p, c.Width, render.TerminalOptions{})
		ctx.Printf("%s\n%s\n", lipgloss.JoinHorizontal(lipgloss.Top,
			headerStyle.Render(render.DefaultTitle), "  ", dateStyle.Render(date)), grid)
		for _, a := range p.Actions {
			ctx.Printf("%s  ID: %d\n", dateStyle.Render(a.Name), a.ID)
		}
	}
	return nil
}
