package actions

import (
	"github.com/julianstephens/workplan/internal/cli"
)

type MoveCmd struct {
	IDs []int64 `arg:"" help:"Action IDs in their new order. Unlisted actions follow in their current order."`
}

func (c *MoveCmd) Run(ctx *cli.Context) error {
	listed := make(map[int64]bool, len(c.IDs))
	order := make([]int64, 0, len(c.IDs))
	for _, id := range c.IDs {
		if _, err := ctx.FindAction(id); err != nil {
			return err
		}
		if !listed[id] {
			listed[id] = true
			order = append(order, id)
		}
	}
	for _, a := range ctx.Plan.Actions() {
		if !listed[a.ID] {
			order = append(order, a.ID)
		}
	}

	ctx.Plan.ReorderActions(order)

	ctx.Printf("New order:\n")
	for i, a := range ctx.Plan.Actions() {
		ctx.Printf("  %d. %s (ID: %d)\n", i+1, a.Name, a.ID)
	}
	return nil
}
