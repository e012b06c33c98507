package usecase

import (
	"math"
	"testing"
	"time"

	"SentiTrade/internal/domain/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(ts string, band models.Band, pnl, size float64) models.MergedRecord {
	t, err := time.Parse("2006-01-02 15:04", ts)
	if err != nil {
		panic(err)
	}
	return models.MergedRecord{
		Timestamp: t,
		Date:      models.DateOf(t),
		FGClass:   band,
		ClosedPnL: decimal.NewFromFloat(pnl),
		SizeUSD:   decimal.NewFromFloat(size),
	}
}

func TestByBandFixedOrderAndEmptyBands(t *testing.T) {
	records := []models.MergedRecord{
		rec("2023-01-02 10:00", models.Greed, 10, 100),
		rec("2023-01-02 11:00", models.Greed, -4, 300),
		rec("2023-01-03 10:00", models.Greed, 0, 200),
		rec("2023-01-04 10:00", models.Fear, 7, 50),
	}

	got := ByBand(records)
	require.Len(t, got, 5)
	for i, b := range models.Bands() {
		assert.Equal(t, b, got[i].Band)
	}

	greed := got[models.Greed.Index()]
	assert.Equal(t, 3, greed.Count)
	assert.InDelta(t, 2.0, float64(greed.MeanPnL), 1e-9)
	assert.InDelta(t, 7.2111, float64(greed.StdPnL), 1e-4)
	assert.InDelta(t, 200.0, float64(greed.MeanSize), 1e-9)
	assert.InDelta(t, 1.0/3.0, float64(greed.WinRate), 1e-9)
	assert.Equal(t, "6", greed.TotalPnL.String())

	fear := got[models.Fear.Index()]
	assert.Equal(t, 1, fear.Count)
	assert.True(t, fear.StdPnL.IsNaN(), "sample std of one value is undefined")
	assert.Equal(t, 1.0, float64(fear.WinRate))

	neutral := got[models.Neutral.Index()]
	assert.Zero(t, neutral.Count)
	assert.True(t, neutral.MeanPnL.IsNaN())
	assert.True(t, neutral.WinRate.IsNaN())
	assert.True(t, neutral.TotalPnL.IsZero())
}

func TestWinRateBounds(t *testing.T) {
	records := []models.MergedRecord{
		rec("2023-01-02 10:00", models.Fear, 1, 1),
		rec("2023-01-02 10:00", models.Fear, -1, 1),
		rec("2023-01-02 10:00", models.ExtremeFear, -1, 1),
	}
	for _, st := range ByBand(records) {
		if st.Count == 0 {
			assert.True(t, math.IsNaN(float64(st.WinRate)))
			continue
		}
		assert.GreaterOrEqual(t, float64(st.WinRate), 0.0)
		assert.LessOrEqual(t, float64(st.WinRate), 1.0)
	}
}

func TestByWeekday(t *testing.T) {
	records := []models.MergedRecord{
		rec("2023-01-02 10:00", models.Fear, 10, 1), // Monday
		rec("2023-01-02 12:00", models.Fear, 5, 1),
		rec("2023-01-08 10:00", models.Fear, -3, 1), // Sunday
	}
	got := ByWeekday(records)
	require.Len(t, got, 7)
	assert.Equal(t, "Monday", got[0].Name)
	assert.Equal(t, "15", got[0].TotalPnL.String())
	assert.True(t, got[1].TotalPnL.IsZero())
	assert.Equal(t, "Sunday", got[6].Name)
	assert.Equal(t, "-3", got[6].TotalPnL.String())
}

func TestSummarize(t *testing.T) {
	empty := Summarize(nil)
	assert.Zero(t, empty.Count)
	assert.True(t, empty.MeanPnL.IsNaN())

	tot := Summarize([]models.MergedRecord{
		rec("2023-01-02 10:00", models.Fear, 100, 1),
		rec("2023-01-02 11:00", models.Fear, -50, 1),
		rec("2023-01-02 12:00", models.Fear, 25, 1),
	})
	assert.Equal(t, 3, tot.Count)
	assert.Equal(t, "75", tot.TotalPnL.String())
	assert.InDelta(t, 25.0, float64(tot.MeanPnL), 1e-9)
	assert.InDelta(t, 2.0/3.0, float64(tot.WinRate), 1e-9)
}

func TestAggregate(t *testing.T) {
	st := NewAggregator(nil).Aggregate([]models.MergedRecord{rec("2023-01-02 10:00", models.Neutral, 1, 1)})
	assert.Len(t, st.Bands, 5)
	assert.Len(t, st.Weekdays, 7)
	assert.Equal(t, 1, st.Totals.Count)
	b, ok := st.Band(models.Neutral)
	require.True(t, ok)
	assert.Equal(t, 1, b.Count)
}

func TestSampleStdUsesUnbiasedEstimator(t *testing.T) {
	assert.InDelta(t, math.Sqrt2, sampleStd([]float64{1, 3}), 1e-12)
	assert.True(t, math.IsNaN(sampleStd([]float64{5})))
	assert.True(t, math.IsNaN(sampleStd(nil)))
}
