package chart

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"SentiTrade/internal/domain/models"
	"SentiTrade/pkg/logger"
	"SentiTrade/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func fixture() ([]models.MergedRecord, models.Stats) {
	start := time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC)
	bands := []models.Band{models.Fear, models.Greed, models.Greed, models.ExtremeGreed, models.Fear, models.Neutral}
	pnls := []int64{50, -20, 120, 900, -600, 5}

	records := make([]models.MergedRecord, len(bands))
	running := decimal.Zero
	for i, b := range bands {
		ts := start.Add(time.Duration(i) * 26 * time.Hour)
		pnl := decimal.NewFromInt(pnls[i])
		running = running.Add(pnl)
		records[i] = models.MergedRecord{
			Timestamp:     ts,
			Date:          models.DateOf(ts),
			FGClass:       b,
			ClosedPnL:     pnl,
			SizeUSD:       decimal.NewFromInt(int64(100 * (i + 1))),
			CumulativePnL: running,
		}
	}

	stats := models.Stats{}
	for _, b := range models.Bands() {
		st := models.BandStats{Band: b, MeanPnL: models.NaN(), StdPnL: models.NaN(), MeanSize: models.NaN(), WinRate: models.NaN()}
		if b == models.Greed {
			st = models.BandStats{Band: b, Count: 2, MeanPnL: 50, StdPnL: 98.99, MeanSize: 250, WinRate: 0.5}
		}
		stats.Bands = append(stats.Bands, st)
	}
	for _, d := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday} {
		stats.Weekdays = append(stats.Weekdays, models.WeekdayTotal{Day: d, Name: d.String(), TotalPnL: decimal.NewFromInt(int64(d) - 3)})
	}
	return records, stats
}

func newRenderer(reg *prometheus.Registry) *Renderer {
	return New(logger.Nop(), metrics.New(reg), WithSize(4*vg.Inch, 3*vg.Inch))
}

func TestRenderAllWritesCatalog(t *testing.T) {
	records, stats := fixture()
	dir := filepath.Join(t.TempDir(), "out")

	written, err := newRenderer(prometheus.NewRegistry()).RenderAll(context.Background(), dir, records, stats)
	require.NoError(t, err)
	require.Len(t, written, len(models.ChartCatalog()))

	for _, entry := range models.ChartCatalog() {
		f, err := os.Open(filepath.Join(dir, entry.File))
		require.NoError(t, err, entry.File)
		_, err = png.DecodeConfig(f)
		f.Close()
		assert.NoError(t, err, entry.File)
	}
}

func TestRenderAllSkipsEmptyCharts(t *testing.T) {
	_, stats := fixture()
	dir := t.TempDir()

	written, err := newRenderer(prometheus.NewRegistry()).RenderAll(context.Background(), dir, nil, stats)
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "cumulative_pnl.png"))
	assert.True(t, os.IsNotExist(statErr))
	assert.Contains(t, written, filepath.Join(dir, "daily_performance.png"))
}

func TestDashboardCharts(t *testing.T) {
	records, stats := fixture()
	r := newRenderer(prometheus.NewRegistry())

	curve := models.EquityCurve{
		Capital: decimal.NewFromInt(10000),
		Points: []models.EquityPoint{
			{Timestamp: records[0].Timestamp, Balance: decimal.NewFromInt(10100)},
			{Timestamp: records[1].Timestamp, Balance: decimal.NewFromInt(10050)},
		},
	}
	for name, fn := range map[string]func() ([]byte, error){
		"equity":       func() ([]byte, error) { return r.Equity(curve) },
		"distribution": func() ([]byte, error) { return r.Distribution(records) },
		"sizing":       func() ([]byte, error) { return r.Sizing(stats.Bands) },
	} {
		b, err := fn()
		require.NoError(t, err, name)
		_, err = png.DecodeConfig(bytes.NewReader(b))
		assert.NoError(t, err, name)
	}
}

func TestBuildersRejectEmptyInput(t *testing.T) {
	_, err := EquityCurve(models.EquityCurve{})
	assert.ErrorIs(t, err, ErrNoData)
	_, err = PnLDistribution(nil, true)
	assert.ErrorIs(t, err, ErrNoData)
	_, err = PositionSizing([]models.BandStats{{Band: models.Fear, MeanSize: models.NaN()}})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestDistributionClipsAxis(t *testing.T) {
	records, _ := fixture()
	p, err := PnLDistribution(records, true)
	require.NoError(t, err)
	assert.Equal(t, -500.0, p.Y.Min)
	assert.Equal(t, 1000.0, p.Y.Max)
}
