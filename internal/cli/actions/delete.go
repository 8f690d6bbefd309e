package actions

import (
	"github.com/julianstephens/workplan/internal/cli"
	"github.com/julianstephens/workplan/internal/plan"
)

type DeleteCmd struct {
	ID  int64 `arg:"" help:"Action ID to delete."`
	Yes bool  `short:"y" help:"Delete without asking for confirmation."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	// Check if action exists first
	action, err := ctx.FindAction(c.ID)
	if err != nil {
		return err
	}

	confirm := ctx.Confirmer()
	if c.Yes {
		confirm = plan.Always
	}
	if !ctx.Plan.DeleteAction(c.ID, confirm) {
		ctx.Printf("Delete cancelled.\n")
		return nil
	}

	ctx.Printf("Deleted action: %s (ID: %d)\n", action.Name, c.ID)
	return nil
}
