package main

import (
	"context"
	"fmt"
	"os"

	"github.com/segyhp/yunta/internal/bootstrap"
	"github.com/segyhp/yunta/internal/cli"
	"github.com/segyhp/yunta/internal/config"
	"github.com/segyhp/yunta/internal/service"
	"github.com/segyhp/yunta/pkg/logging"
)

func main() {
	cmd := cli.NewRootCommand(open)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}

func open(ctx context.Context) (service.Service, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return app.Service, app.Close, nil
}
