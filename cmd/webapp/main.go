package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/analytica/webapp/components/webapp"
)

type cli struct {
	Serve serveCmd `cmd:"" default:"1" help:"Run the Analytica web frontend."`
}

type serveCmd struct {
	Config     string `type:"path" help:"Path to a YAML config file."`
	Addr       string `help:"Listen address (overrides config)."`
	BackendURL string `name:"backend-url" help:"Base URL of the analytics backend (overrides config)."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Server-rendered frontend for the Analytica data analysis backend."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *serveCmd) Run(ctx context.Context) error {
	cfg, err := webapp.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Addr != "" {
		cfg.ListenAddr = cmd.Addr
	}
	if cmd.BackendURL != "" {
		cfg.BackendURL = cmd.BackendURL
	}

	app, err := webapp.New(cfg)
	if err != nil {
		return err
	}
	router := app.Router()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Listen(cfg.ListenAddr)
	}()
	log.Printf("webapp: listening on %s (backend %s)", cfg.ListenAddr, cfg.BackendURL)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return router.Shutdown()
	}
}
