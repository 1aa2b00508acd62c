package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/quill/internal/app"
	"github.com/samvad-hq/quill/internal/cli"
	"github.com/samvad-hq/quill/internal/config"
	"github.com/samvad-hq/quill/internal/logger"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.DebugObj("quill starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := cli.New(func() (*app.App, error) { return app.New(cfg, log) })
	defer c.Close()

	return c.Command(version).ExecuteContext(ctx)
}
