package main

import (
	"context"
	"flag"

	"SentiTrade/internal/di"

	"github.com/google/subcommands"
)

type dashboardCmd struct {
	port int
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "serve the interactive dashboard" }
func (*dashboardCmd) Usage() string {
	return `sentitrade [-config path] dashboard [-port n]

  Serves the filterable dashboard over HTTP until interrupted.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 0, "listen port, overrides server.port")
}

func (c *dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return failure(err)
	}
	if c.port > 0 {
		cfg.Server.Port = c.port
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		return failure(err)
	}
	if err := app.Run(ctx); err != nil {
		return failure(err)
	}
	return subcommands.ExitSuccess
}
