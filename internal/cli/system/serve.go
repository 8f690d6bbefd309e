package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/workplan/internal/cli"
	"github.com/julianstephens/workplan/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address (default from config, else 127.0.0.1:8737)."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.Server.Addr
	}

	srv, err := server.New(ctx.Plan, server.Config{Addr: addr})
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Printf("Serving plan at http://%s (Ctrl+C to stop)\n", addr)
	ctx.Printf("Print view: http://%s/?print=1\n", addr)
	return srv.Run(runCtx)
}
