package usecase

import (
	"math"
	"time"

	"SentiTrade/internal/domain/models"
	"SentiTrade/internal/domain/repository"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Aggregator computes grouped statistics over merged records.
type Aggregator struct {
	metrics repository.Metrics
}

func NewAggregator(m repository.Metrics) *Aggregator {
	return &Aggregator{metrics: m}
}

// Aggregate computes band, weekday and overall statistics.
func (g *Aggregator) Aggregate(records []models.MergedRecord) models.Stats {
	start := time.Now()
	st := models.Stats{
		Bands:    ByBand(records),
		Weekdays: ByWeekday(records),
		Totals:   Summarize(records),
	}
	if g.metrics != nil {
		g.metrics.RecordStage("aggregate", time.Since(start))
	}
	return st
}

// ByBand returns one row per sentiment band in fixed band order, empty bands
// included.
func ByBand(records []models.MergedRecord) []models.BandStats {
	groups := make(map[models.Band][]models.MergedRecord, 5)
	for _, r := range records {
		groups[r.FGClass] = append(groups[r.FGClass], r)
	}

	out := make([]models.BandStats, 0, 5)
	for _, b := range models.Bands() {
		out = append(out, bandStats(b, groups[b]))
	}
	return out
}

func bandStats(b models.Band, rs []models.MergedRecord) models.BandStats {
	st := models.BandStats{
		Band:     b,
		Count:    len(rs),
		MeanPnL:  models.NaN(),
		StdPnL:   models.NaN(),
		MeanSize: models.NaN(),
		WinRate:  models.NaN(),
		TotalPnL: decimal.Zero,
	}
	if len(rs) == 0 {
		return st
	}

	pnls := make([]float64, len(rs))
	sizes := make([]float64, len(rs))
	wins := 0
	for i, r := range rs {
		pnls[i] = r.PnL()
		sizes[i] = r.Size()
		st.TotalPnL = st.TotalPnL.Add(r.ClosedPnL)
		if r.Win() {
			wins++
		}
	}

	st.MeanPnL = models.Float(stat.Mean(pnls, nil))
	st.StdPnL = models.Float(sampleStd(pnls))
	st.MeanSize = models.Float(stat.Mean(sizes, nil))
	st.WinRate = models.Float(float64(wins) / float64(len(rs)))
	return st
}

// ByWeekday returns total PnL for Monday..Sunday. Days without trades are 0.
func ByWeekday(records []models.MergedRecord) []models.WeekdayTotal {
	sums := make(map[time.Weekday]decimal.Decimal, 7)
	for _, r := range records {
		d := r.Timestamp.Weekday()
		sums[d] = sums[d].Add(r.ClosedPnL)
	}

	out := make([]models.WeekdayTotal, 0, 7)
	for _, d := range weekOrder {
		out = append(out, models.WeekdayTotal{Day: d, Name: d.String(), TotalPnL: sums[d]})
	}
	return out
}

// Summarize computes totals over the whole set. Mean and win rate are NaN
// when records is empty.
func Summarize(records []models.MergedRecord) models.Totals {
	t := models.Totals{
		Count:    len(records),
		TotalPnL: decimal.Zero,
		MeanPnL:  models.NaN(),
		WinRate:  models.NaN(),
	}
	if len(records) == 0 {
		return t
	}
	wins := 0
	for _, r := range records {
		t.TotalPnL = t.TotalPnL.Add(r.ClosedPnL)
		if r.Win() {
			wins++
		}
	}
	n := float64(len(records))
	t.MeanPnL = models.Float(t.TotalPnL.InexactFloat64() / n)
	t.WinRate = models.Float(float64(wins) / n)
	return t
}

// sampleStd is the n-1 estimator; fewer than two values give NaN.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.StdDev(xs, nil)
}
