package chart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"SentiTrade/internal/domain/models"
	"SentiTrade/internal/domain/repository"
	"SentiTrade/internal/domain/service"
	"SentiTrade/pkg/logger"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned by builders when there is nothing to draw.
var ErrNoData = errors.New("chart: no data to plot")

// Option configures Renderer.
type Option func(*Renderer)

// WithSize sets the PNG canvas size.
func WithSize(w, h vg.Length) Option {
	return func(r *Renderer) {
		r.width = w
		r.height = h
	}
}

// Renderer draws charts with gonum/plot and encodes them as PNG.
type Renderer struct {
	log     *logger.Logger
	metrics repository.Metrics
	width   vg.Length
	height  vg.Length
}

func New(log *logger.Logger, m repository.Metrics, opts ...Option) *Renderer {
	if log == nil {
		log = logger.Nop()
	}
	r := &Renderer{
		log:     log,
		metrics: m,
		width:   10 * vg.Inch,
		height:  6 * vg.Inch,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ service.ChartRenderer = (*Renderer)(nil)

// RenderAll writes the static chart set into dir. A chart that cannot be
// drawn is logged and skipped; the returned error joins those failures.
func (r *Renderer) RenderAll(ctx context.Context, dir string, records []models.MergedRecord, stats models.Stats) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("chart: create output dir: %w", err)
	}

	builders := map[string]func() (*plot.Plot, error){
		models.ChartCumulativePnL: func() (*plot.Plot, error) { return CumulativePnL(records) },
		models.ChartDistribution:  func() (*plot.Plot, error) { return PnLDistribution(records, true) },
		models.ChartSizing:        func() (*plot.Plot, error) { return PositionSizing(stats.Bands) },
		models.ChartVolatility:    func() (*plot.Plot, error) { return RiskVolatility(stats.Bands) },
		models.ChartWinRate:       func() (*plot.Plot, error) { return WinRate(stats.Bands) },
		models.ChartScatter:       func() (*plot.Plot, error) { return PnLVsSize(records) },
		models.ChartDaily:         func() (*plot.Plot, error) { return DailyPerformance(stats.Weekdays) },
	}

	var (
		written []string
		errs    []error
	)
	for _, entry := range models.ChartCatalog() {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		path := filepath.Join(dir, entry.File)
		p, err := builders[entry.Key]()
		if err == nil {
			err = p.Save(r.width, r.height, path)
		}

		switch {
		case errors.Is(err, ErrNoData):
			r.record(entry.Key, "skipped")
			r.log.Warn("chart skipped", logger.String("chart", entry.Key), logger.Error(err))
		case err != nil:
			r.record(entry.Key, "error")
			r.log.Error("chart failed", logger.String("chart", entry.Key), logger.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", entry.Key, err))
		default:
			r.record(entry.Key, "ok")
			r.log.Debug("chart written", logger.String("chart", entry.Key), logger.String("path", path))
			written = append(written, path)
		}
	}
	return written, errors.Join(errs...)
}

// Equity draws the simulated balance curve as PNG.
func (r *Renderer) Equity(curve models.EquityCurve) ([]byte, error) {
	return r.png(models.DashboardChartEquity, func() (*plot.Plot, error) { return EquityCurve(curve) })
}

// Distribution draws PnL box plots per band as PNG.
func (r *Renderer) Distribution(records []models.MergedRecord) ([]byte, error) {
	return r.png(models.DashboardChartDistribution, func() (*plot.Plot, error) { return PnLDistribution(records, false) })
}

// Sizing draws average position size per band as PNG.
func (r *Renderer) Sizing(stats []models.BandStats) ([]byte, error) {
	return r.png(models.DashboardChartSizing, func() (*plot.Plot, error) { return PositionSizing(stats) })
}

func (r *Renderer) png(name string, build func() (*plot.Plot, error)) ([]byte, error) {
	p, err := build()
	if err != nil {
		if errors.Is(err, ErrNoData) {
			r.record(name, "skipped")
		} else {
			r.record(name, "error")
		}
		return nil, err
	}
	wt, err := p.WriterTo(r.width, r.height, "png")
	if err != nil {
		r.record(name, "error")
		return nil, fmt.Errorf("chart %s: %w", name, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		r.record(name, "error")
		return nil, fmt.Errorf("chart %s: %w", name, err)
	}
	r.record(name, "ok")
	return buf.Bytes(), nil
}

func (r *Renderer) record(chart, result string) {
	if r.metrics != nil {
		r.metrics.RecordChart(chart, result)
	}
}
