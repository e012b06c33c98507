package main

import (
	"context"
	"flag"
	"fmt"

	"SentiTrade/internal/di"

	"github.com/google/subcommands"
)

type reportCmd struct {
	render bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "assemble the PDF report" }
func (*reportCmd) Usage() string {
	return `sentitrade [-config path] report [-render]

  Builds the PDF report from the band statistics and the chart images in the
  output directory. Charts that are missing are left out.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.render, "render", false, "regenerate charts and summary before assembling")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return failure(err)
	}
	p, err := di.InitializePipeline(cfg)
	if err != nil {
		return failure(err)
	}

	res, err := p.Report(ctx, c.render)
	if err != nil {
		return failure(err)
	}
	fmt.Printf("Report generated: %s\n", res.ReportPath)
	return subcommands.ExitSuccess
}
