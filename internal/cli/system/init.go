package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/workplan/internal/cli"
	"github.com/julianstephens/workplan/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing store before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Provider.GetConfigPath()

	if c.Force && path != storage.MemoryLocation && !storage.IsPostgres(path) {
		if _, err := os.Stat(path); err == nil {
			// Close first to release file locks
			if err := ctx.Provider.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Provider.Init(); err != nil {
		return err
	}
	// Seeds the default actions when the store is new
	ctx.Plan.Init()

	ctx.Printf("Initialized workplan storage at: %s\n", path)
	ctx.Printf("Plan has %d action(s).\n", len(ctx.Plan.Actions()))
	return nil
}
