package actions

import (
	"github.com/julianstephens/workplan/internal/cli"
	"github.com/julianstephens/workplan/internal/constants"
)

type BoxCmd struct {
	ID    int64 `arg:"" help:"Action ID."`
	Cycle int   `arg:"" help:"Cycle number, starting at 1."`
	Box   int   `arg:"" help:"Box number, starting at 1."`
}

func (c *BoxCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.FindAction(c.ID); err != nil {
		return err
	}
	ctx.Plan.SetBoxState(c.ID, c.Cycle-1, c.Box-1)
	ctx.Printf("%s\n", constants.BoxToggleHint)
	return nil
}
