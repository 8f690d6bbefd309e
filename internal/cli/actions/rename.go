package actions

import (
	"github.com/julianstephens/workplan/internal/cli"
)

type RenameCmd struct {
	ID   int64  `arg:"" help:"Action ID to rename."`
	Name string `arg:"" help:"New name. A blank name keeps the current one."`
}

func (c *RenameCmd) Run(ctx *cli.Context) error {
	before, err := ctx.FindAction(c.ID)
	if err != nil {
		return err
	}

	ctx.Plan.RenameAction(c.ID, c.Name)

	after, _ := ctx.Plan.Action(c.ID)
	if after.Name == before.Name {
		ctx.Printf("Name unchanged: %s\n", after.Name)
		return nil
	}
	ctx.Printf("Renamed action %d: %s -> %s\n", c.ID, before.Name, after.Name)
	return nil
}
