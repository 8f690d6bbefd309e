package actions

import (
	"fmt"

	"github.com/julianstephens/workplan/internal/cli"
)

type AddCmd struct {
	Name   string `arg:"" help:"Name of the action."`
	Boxes  int    `help:"Boxes per cycle (default from config, else 3)."`
	Cycles int    `help:"Number of cycles (default from config, else 8)."`
	Weight *bool  `help:"Track a weight for every cycle (default from config)." negatable:""`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	boxes := c.Boxes
	if boxes <= 0 {
		boxes = ctx.Config.Defaults.CycleCount
	}
	cycles := c.Cycles
	if cycles <= 0 {
		cycles = ctx.Config.Defaults.TotalCycles
	}

	weight := ctx.Config.Defaults.TrackWeight
	if c.Weight != nil {
		weight = *c.Weight
	}

	action, err := ctx.Plan.AddAction(c.Name, boxes, cycles, weight)
	if err != nil {
		return fmt.Errorf("failed to add action: %w", err)
	}

	ctx.Printf("Added action: %s (ID: %d, %d cycles x %d boxes)\n", action.Name, action.ID, action.TotalCycles, action.CycleCount)
	return nil
}
