package actions

import (
	"fmt"

	"github.com/julianstephens/workplan/internal/cli"
)

type WeightCmd struct {
	ID    int64  `arg:"" help:"Action ID."`
	Cycle int    `arg:"" help:"Cycle number, starting at 1."`
	Value string `arg:"" help:"Weight in kg, stored as typed. Pass \"\" to clear."`
}

func (c *WeightCmd) Run(ctx *cli.Context) error {
	action, err := ctx.FindAction(c.ID)
	if err != nil {
		return err
	}
	if !action.HasWeightTracking {
		return fmt.Errorf("action %q does not track weight", action.Name)
	}
	if c.Cycle < 1 || c.Cycle > len(action.Cycles) {
		return fmt.Errorf("cycle must be between 1 and %d", len(action.Cycles))
	}

	ctx.Plan.SetCycleWeight(c.ID, c.Cycle-1, c.Value)
	ctx.Printf("%s, cycle %d: %s kg\n", action.Name, c.Cycle, c.Value)
	return nil
}
