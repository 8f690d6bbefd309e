package system

import (
	"github.com/julianstephens/workplan/internal/cli"
)

type PrintCmd struct{}

func (c *PrintCmd) Run(ctx *cli.Context) error {
	path, err := newPrinter(ctx).Print(ctx.Plan.Snapshot())
	if err != nil {
		return err
	}
	ctx.Printf("Opened printable plan: %s\n", path)
	return nil
}
