package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"SentiTrade/internal/domain/models"
	"SentiTrade/internal/domain/service"
	"SentiTrade/pkg/cache"
	"SentiTrade/pkg/config"
	"SentiTrade/pkg/logger"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Risk multiplier bounds accepted by the dashboard.
const (
	RiskMin = 0.5
	RiskMax = 3.0
)

// ErrDatasetUnavailable wraps failures to load the merged table.
var ErrDatasetUnavailable = errors.New("dataset unavailable")

// DatasetSource produces the merged table the dashboard filters.
type DatasetSource interface {
	Dataset(ctx context.Context) ([]models.MergedRecord, error)
}

// Dashboard serves filtered views over the merged table. The table is loaded
// once and memoized in the cache under a key derived from the input paths.
type Dashboard struct {
	source DatasetSource
	cache  cache.Service
	charts service.ChartRenderer
	cfg    *config.Config
	log    *logger.Logger
	key    string

	mu sync.Mutex
}

func NewDashboard(source DatasetSource, c cache.Service, charts service.ChartRenderer, cfg *config.Config, log *logger.Logger) *Dashboard {
	if log == nil {
		log = logger.Nop()
	}
	return &Dashboard{
		source: source,
		cache:  c,
		charts: charts,
		cfg:    cfg,
		log:    log,
		key:    DatasetKey(cfg.Data.TradesFile, cfg.Data.SentimentFile),
	}
}

// DatasetKey is the cache key of the merged table built from the two inputs.
// It covers each file's size and modification time, so an entry left in a
// shared cache by an earlier process is not reused once an input changes.
func DatasetKey(tradesPath, sentimentPath string) string {
	return cache.GenerateKeyWithParams("merged", cache.HashKey(fingerprint(tradesPath)+"|"+fingerprint(sentimentPath)))
}

func fingerprint(path string) string {
	fi, err := os.Stat(path)
	if err != nil {
		return path + ":absent"
	}
	return fmt.Sprintf("%s:%d:%d", path, fi.Size(), fi.ModTime().UnixNano())
}

// Records returns the memoized merged table. Callers must not modify it.
func (d *Dashboard) Records(ctx context.Context) ([]models.MergedRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	records, err := cache.GetOrLoad(ctx, d.cache, d.key, d.cfg.Cache.TTL, d.source.Dataset, func(err error) {
		d.log.Warn("dataset cache unavailable", logger.String("key", d.key), logger.Error(err))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatasetUnavailable, err)
	}
	return records, nil
}

// Options reports the filter bounds of the loaded data.
func (d *Dashboard) Options(ctx context.Context) (models.Options, error) {
	records, err := d.Records(ctx)
	if err != nil {
		return models.Options{}, err
	}
	opts := models.Options{
		Bands:          models.Bands(),
		DefaultCapital: d.cfg.Dashboard.DefaultCapital,
		DefaultRisk:    d.cfg.Dashboard.DefaultRisk,
		RiskMin:        RiskMin,
		RiskMax:        RiskMax,
		Rows:           len(records),
	}
	for i, r := range records {
		if i == 0 || r.Date.Before(opts.MinDate) {
			opts.MinDate = r.Date
		}
		if i == 0 || r.Date.After(opts.MaxDate) {
			opts.MaxDate = r.Date
		}
	}
	return opts, nil
}

// Summary computes KPIs, band statistics, the equity curve and insights for
// the rows matching f.
func (d *Dashboard) Summary(ctx context.Context, f models.Filter) (models.Dashboard, error) {
	rows, err := d.filtered(ctx, f)
	if err != nil {
		return models.Dashboard{Filter: f}, err
	}

	stats := ByBand(rows)
	curve := SimulateEquity(rows, f.Capital, f.Risk)
	insight, err := BuildInsight(stats, curve)
	if err != nil {
		return models.Dashboard{Filter: f}, err
	}
	return models.Dashboard{
		Filter:  f,
		KPIs:    KPIs(Summarize(rows)),
		Equity:  curve,
		Stats:   stats,
		Insight: insight,
	}, nil
}

// Trades returns up to limit matching rows, newest first.
func (d *Dashboard) Trades(ctx context.Context, f models.Filter, limit int) ([]models.MergedRecord, int, error) {
	rows, err := d.filtered(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total := len(rows)

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.After(rows[j].Timestamp)
	})
	if maxRows := d.cfg.Dashboard.MaxRows; maxRows > 0 && limit > maxRows {
		limit = maxRows
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, total, nil
}

// Chart renders one of the dashboard charts for the rows matching f.
func (d *Dashboard) Chart(ctx context.Context, name string, f models.Filter) ([]byte, error) {
	rows, err := d.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	switch name {
	case models.DashboardChartEquity:
		return d.charts.Equity(SimulateEquity(rows, f.Capital, f.Risk))
	case models.DashboardChartDistribution:
		return d.charts.Distribution(rows)
	case models.DashboardChartSizing:
		return d.charts.Sizing(ByBand(rows))
	default:
		return nil, fmt.Errorf("unknown chart %q", name)
	}
}

// filtered copies the matching rows into a new slice.
func (d *Dashboard) filtered(ctx context.Context, f models.Filter) ([]models.MergedRecord, error) {
	records, err := d.Records(ctx)
	if err != nil {
		return nil, err
	}
	rows := FilterRecords(records, f)
	if len(rows) == 0 {
		return nil, models.ErrEmptyFilteredSet
	}
	return rows, nil
}

// FilterRecords returns the records matching f in their original order.
func FilterRecords(records []models.MergedRecord, f models.Filter) []models.MergedRecord {
	out := make([]models.MergedRecord, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// SimulateEquity replays records in order: each trade moves the balance by
// its PnL scaled by risk.
func SimulateEquity(records []models.MergedRecord, capital, risk float64) models.EquityCurve {
	curve := models.EquityCurve{
		Capital: decimal.NewFromFloat(capital),
		Risk:    decimal.NewFromFloat(risk),
		Points:  make([]models.EquityPoint, 0, len(records)),
	}
	balance := curve.Capital
	for _, r := range records {
		balance = balance.Add(r.ClosedPnL.Mul(curve.Risk))
		curve.Points = append(curve.Points, models.EquityPoint{Timestamp: r.Timestamp, Balance: balance})
	}
	return curve
}

// KPIs builds the dashboard tiles from the totals of a filtered set.
func KPIs(t models.Totals) []models.KPI {
	total := t.TotalPnL.InexactFloat64()
	return []models.KPI{
		{Key: "total_pnl", Label: "Total PnL", Value: models.Float(total), Text: formatMoney(total)},
		{Key: "win_rate", Label: "Win Rate", Value: t.WinRate, Text: floatPercent(t.WinRate)},
		{Key: "avg_pnl", Label: "Avg PnL / Trade", Value: t.MeanPnL, Text: floatMoney(t.MeanPnL)},
		{Key: "trades", Label: "Total Trades", Value: models.Float(t.Count), Text: humanize.Comma(int64(t.Count))},
	}
}
