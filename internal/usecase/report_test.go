package usecase

import (
	"context"
	"path/filepath"
	"testing"

	"SentiTrade/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	path string
	doc  models.Report
}

func (w *captureWriter) Write(_ context.Context, path string, doc models.Report) error {
	w.path, w.doc = path, doc
	return nil
}

func reportStats() models.Stats {
	rs := []models.MergedRecord{
		rec("2023-01-02 10:00", models.ExtremeFear, -30, 100),
		rec("2023-01-02 11:00", models.ExtremeFear, 10, 100),
		rec("2023-01-03 10:00", models.Greed, 40, 300),
		rec("2023-01-03 11:00", models.Greed, 60, 300),
		rec("2023-01-04 10:00", models.ExtremeGreed, 300, 900),
		rec("2023-01-04 11:00", models.ExtremeGreed, -100, 900),
	}
	return NewAggregator(nil).Aggregate(rs)
}

func TestExecutiveSummary(t *testing.T) {
	text, err := ExecutiveSummary(reportStats())
	require.NoError(t, err)

	assert.Contains(t, text, "analyzes 6 trades")
	assert.Contains(t, text, `($100.00 per trade) occurs during "Extreme Greed"`)
	assert.Contains(t, text, `"Extreme Fear" markets return the lowest average PnL (-$10.00 per trade)`)
	assert.Contains(t, text, `**Hidden risk:** "Extreme Greed"`)
	assert.Contains(t, text, `"Extreme Fear" shows the lowest win rate (50.0%)`)
}

func TestExecutiveSummaryWithoutData(t *testing.T) {
	text, err := ExecutiveSummary(NewAggregator(nil).Aggregate(nil))
	require.NoError(t, err)
	assert.Contains(t, text, "analyzes 0 trades")
	assert.NotContains(t, text, "Strongest environment")
}

func TestReporterBuildLayout(t *testing.T) {
	r := NewReporter(&captureWriter{}, nil, nil)
	doc, err := r.Build(reportStats(), "out")
	require.NoError(t, err)

	assert.Equal(t, ReportHeader, doc.Header)
	catalog := models.ChartCatalog()
	require.Len(t, doc.Sections, 3+len(catalog))

	assert.Equal(t, "Executive Summary", doc.Sections[0].Title)
	assert.True(t, doc.Sections[1].NewPage)
	assert.False(t, doc.Sections[2].NewPage, "recommendations share the methodology page")

	for i, entry := range catalog {
		sec := doc.Sections[3+i]
		assert.Equal(t, entry.Title, sec.Title)
		assert.Equal(t, filepath.Join("out", entry.File), sec.Image)
		assert.True(t, sec.Banner)
		assert.True(t, sec.NewPage)
	}
	assert.Equal(t, "Cumulative Performance", doc.Sections[3].Title)
	assert.Equal(t, "Win Rate Efficiency", doc.Sections[len(doc.Sections)-1].Title)
}

func TestReporterWrite(t *testing.T) {
	w := &captureWriter{}
	require.NoError(t, NewReporter(w, nil, nil).Write(context.Background(), "out/ds_report.pdf", "out", reportStats()))
	assert.Equal(t, "out/ds_report.pdf", w.path)
	assert.NotEmpty(t, w.doc.Sections)
}
