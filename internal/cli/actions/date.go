package actions

import (
	"github.com/julianstephens/workplan/internal/cli"
)

type DateCmd struct {
	Value string `arg:"" optional:"" help:"Plan date, stored as typed. Omit to show the current one."`
	Clear bool   `help:"Clear the plan date."`
}

func (c *DateCmd) Run(ctx *cli.Context) error {
	switch {
	case c.Clear:
		ctx.Plan.SetPlanDate("")
		ctx.Printf("Plan date cleared.\n")
	case c.Value != "":
		ctx.Plan.SetPlanDate(c.Value)
		ctx.Printf("Plan date: %s\n", c.Value)
	case ctx.Plan.PlanDate() == "":
		ctx.Printf("No plan date set.\n")
	default:
		ctx.Printf("Plan date: %s\n", ctx.Plan.PlanDate())
	}
	return nil
}
