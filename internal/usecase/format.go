package usecase

import (
	"SentiTrade/internal/domain/models"
	"SentiTrade/pkg/util"
)

func formatMoney(v float64) string   { return util.FormatMoney(v) }
func formatPercent(v float64) string { return util.FormatPercent(v) }

func floatMoney(f models.Float) string   { return formatMoney(float64(f)) }
func floatPercent(f models.Float) string { return formatPercent(float64(f)) }

// extremeBand picks the band with the largest metric, or the smallest when
// lowest is set. Bands with a NaN metric are skipped; ties keep the earlier
// band.
func extremeBand(stats []models.BandStats, metric func(models.BandStats) models.Float, lowest bool) (models.BandStats, bool) {
	var (
		best  models.BandStats
		found bool
	)
	for _, bs := range stats {
		v := metric(bs)
		if !v.Valid() {
			continue
		}
		if !found {
			best, found = bs, true
			continue
		}
		cur := metric(best)
		if (lowest && v < cur) || (!lowest && v > cur) {
			best = bs
		}
	}
	return best, found
}

func meanPnL(bs models.BandStats) models.Float { return bs.MeanPnL }
func stdPnL(bs models.BandStats) models.Float  { return bs.StdPnL }
func winRate(bs models.BandStats) models.Float { return bs.WinRate }
