package main

import (
	"context"
	"flag"
	"fmt"

	"SentiTrade/internal/di"
	"SentiTrade/internal/service/summary"

	"github.com/google/subcommands"
)

type analyzeCmd struct {
	quiet bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "merge trades with sentiment, render charts and write the summary" }
func (*analyzeCmd) Usage() string {
	return `sentitrade [-config path] analyze [-q]

  Loads the trade history and the Fear & Greed index, aligns them by date,
  renders the chart set into the output directory and writes the text summary.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.quiet, "q", false, "do not print the summary")
}

func (c *analyzeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return failure(err)
	}
	p, err := di.InitializePipeline(cfg)
	if err != nil {
		return failure(err)
	}

	res, err := p.Analyze(ctx)
	if err != nil {
		return failure(err)
	}
	if c.quiet {
		return subcommands.ExitSuccess
	}

	out, err := summary.RenderTerminal(res.Summary)
	if err != nil {
		out = res.Summary
	}
	fmt.Print(out)
	fmt.Printf("Summary saved to %s (%d charts)\n", res.SummaryPath, len(res.Charts))
	return subcommands.ExitSuccess
}
