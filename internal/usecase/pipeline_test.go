package usecase

import (
	"bytes"
	"context"
	"fmt"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"SentiTrade/internal/domain/models"
	"SentiTrade/internal/repository"
	"SentiTrade/internal/service/chart"
	"SentiTrade/internal/service/pdf"
	"SentiTrade/internal/service/summary"
	"SentiTrade/pkg/config"
	"SentiTrade/pkg/logger"
	"SentiTrade/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPipeline(t *testing.T) (*Pipeline, *config.Config) {
	t.Helper()
	return newPipelineWithLogger(t, logger.Nop())
}

func newPipelineWithLogger(t *testing.T, log *logger.Logger) (*Pipeline, *config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.Data.TradesFile = filepath.Join("..", "repository", "testdata", "historical_data.csv")
	cfg.Data.SentimentFile = filepath.Join("..", "repository", "testdata", "fear_greed.csv")
	cfg.Output.Dir = t.TempDir()

	m := metrics.New(prometheus.NewRegistry())
	p := NewPipeline(
		cfg,
		repository.NewCSVSource(log, m),
		NewAligner(log, m),
		NewAggregator(m),
		chart.New(log, m),
		summary.New(),
		NewReporter(pdf.NewWriter(log), log, m),
		log,
	)
	return p, cfg
}

func TestPipelineAnalyze(t *testing.T) {
	p, cfg := newPipeline(t)

	res, err := p.Analyze(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 3, res.Align.Merged)
	require.Len(t, res.Records, 3)
	assert.Equal(t, "29.5", res.Records[2].CumulativePnL.String())
	assert.Equal(t, 3, res.Stats.Totals.Count)

	assert.Len(t, res.Charts, len(models.ChartCatalog()))
	for _, f := range res.Charts {
		assert.FileExists(t, f)
	}

	b, err := os.ReadFile(cfg.SummaryPath())
	require.NoError(t, err)
	assert.Equal(t, res.Summary, string(b))
	assert.Contains(t, res.Summary, "Analysis Summary")
}

func TestPipelineReport(t *testing.T) {
	p, cfg := newPipeline(t)

	res, err := p.Report(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, cfg.ReportPath(), res.ReportPath)
	assert.FileExists(t, cfg.ReportPath())
	assert.FileExists(t, cfg.SummaryPath())
}

func TestPipelineReportWithoutCharts(t *testing.T) {
	p, cfg := newPipeline(t)

	res, err := p.Report(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, res.Charts)
	assert.FileExists(t, cfg.ReportPath())
	assert.NoFileExists(t, cfg.SummaryPath())
}

func TestPipelineMissingInput(t *testing.T) {
	p, cfg := newPipeline(t)
	cfg.Data.TradesFile = filepath.Join(t.TempDir(), "absent.csv")

	_, err := p.Analyze(context.Background())
	var missing *models.MissingFileError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, cfg.Data.TradesFile, missing.Path)
}

func TestPipelineDataset(t *testing.T) {
	p, _ := newPipeline(t)

	rows, err := p.Dataset(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestPipelineDatasetReleasesDigest(t *testing.T) {
	var buf bytes.Buffer
	shared := logger.NewWriter(&buf, zerolog.WarnLevel)
	p, _ := newPipelineWithLogger(t, shared)

	_, err := p.Dataset(context.Background())
	require.NoError(t, err)
	buf.Reset()

	for i := 0; i < 50; i++ {
		shared.Warn("http request", logger.String("uri", fmt.Sprintf("/api/trades?limit=%d", i)))
	}
	written := bytes.Count(buf.Bytes(), []byte("\n"))
	assert.Equal(t, 50, written)

	shared.FlushDigest()
	assert.Equal(t, written, bytes.Count(buf.Bytes(), []byte("\n")), "nothing is held back after the run")
}
