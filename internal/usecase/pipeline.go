package usecase

import (
	"context"
	"fmt"

	"SentiTrade/internal/domain/models"
	"SentiTrade/internal/domain/repository"
	"SentiTrade/internal/domain/service"
	"SentiTrade/pkg/config"
	"SentiTrade/pkg/logger"

	"github.com/google/uuid"
)

// RunResult is what one analyze or report run produced.
type RunResult struct {
	RunID       string
	Align       AlignReport
	Records     []models.MergedRecord
	Stats       models.Stats
	Charts      []string
	Summary     string
	SummaryPath string
	ReportPath  string
}

// Pipeline runs the batch stages: load, align, aggregate, then the outputs.
type Pipeline struct {
	cfg        *config.Config
	source     repository.TradeSource
	aligner    *Aligner
	aggregator *Aggregator
	charts     service.ChartRenderer
	summary    service.SummaryBuilder
	reporter   *Reporter
	log        *logger.Logger
}

func NewPipeline(
	cfg *config.Config,
	source repository.TradeSource,
	aligner *Aligner,
	aggregator *Aggregator,
	charts service.ChartRenderer,
	summary service.SummaryBuilder,
	reporter *Reporter,
	log *logger.Logger,
) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	return &Pipeline{
		cfg:        cfg,
		source:     source,
		aligner:    aligner,
		aggregator: aggregator,
		charts:     charts,
		summary:    summary,
		reporter:   reporter,
		log:        log,
	}
}

// Merge loads both inputs and aligns them.
func (p *Pipeline) Merge(ctx context.Context) ([]models.MergedRecord, AlignReport, error) {
	trades, err := p.source.LoadTrades(ctx, p.cfg.Data.TradesFile)
	if err != nil {
		return nil, AlignReport{}, fmt.Errorf("load: %w", err)
	}
	sentiment, err := p.source.LoadSentiment(ctx, p.cfg.Data.SentimentFile)
	if err != nil {
		return nil, AlignReport{}, fmt.Errorf("load: %w", err)
	}
	records, rep, err := p.aligner.Align(ctx, trades, sentiment)
	if err != nil {
		return nil, rep, fmt.Errorf("align: %w", err)
	}
	return records, rep, nil
}

// Dataset merges the inputs for the dashboard and flushes the row-drop digest.
func (p *Pipeline) Dataset(ctx context.Context) ([]models.MergedRecord, error) {
	log, _ := p.begin()
	defer log.FlushDigest()

	records, _, err := p.Merge(ctx)
	return records, err
}

// Analyze computes the statistics, renders the chart set and writes the
// text summary.
func (p *Pipeline) Analyze(ctx context.Context) (*RunResult, error) {
	log, id := p.begin()
	defer log.FlushDigest()

	res, err := p.compute(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.outputs(ctx, log, res); err != nil {
		return nil, err
	}
	log.Info("analysis complete",
		logger.Int("merged", len(res.Records)),
		logger.Int("charts", len(res.Charts)),
		logger.String("summary", res.SummaryPath),
	)
	return res, nil
}

// Report assembles the PDF. With render set the chart set and summary are
// regenerated first; otherwise charts already in the output directory are
// used and missing ones are left out.
func (p *Pipeline) Report(ctx context.Context, render bool) (*RunResult, error) {
	log, id := p.begin()
	defer log.FlushDigest()

	res, err := p.compute(ctx, id)
	if err != nil {
		return nil, err
	}
	if render {
		if err := p.outputs(ctx, log, res); err != nil {
			return nil, err
		}
	}

	res.ReportPath = p.cfg.ReportPath()
	if err := p.reporter.Write(ctx, res.ReportPath, p.cfg.Output.Dir, res.Stats); err != nil {
		return nil, err
	}
	log.Info("report complete", logger.String("report", res.ReportPath))
	return res, nil
}

func (p *Pipeline) begin() (*logger.Logger, string) {
	id := uuid.NewString()
	p.log.AttachDigest()
	return p.log.With(logger.String("run_id", id)), id
}

func (p *Pipeline) compute(ctx context.Context, id string) (*RunResult, error) {
	records, rep, err := p.Merge(ctx)
	if err != nil {
		return nil, err
	}
	return &RunResult{
		RunID:   id,
		Align:   rep,
		Records: records,
		Stats:   p.aggregator.Aggregate(records),
	}, nil
}

func (p *Pipeline) outputs(ctx context.Context, log *logger.Logger, res *RunResult) error {
	files, err := p.charts.RenderAll(ctx, p.cfg.Output.Dir, res.Records, res.Stats)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		log.Warn("some charts were not rendered", logger.Error(err))
	}
	res.Charts = files

	res.Summary = p.summary.Build(res.Stats)
	res.SummaryPath = p.cfg.SummaryPath()
	if err := p.summary.Write(res.SummaryPath, res.Summary); err != nil {
		return err
	}
	return nil
}
