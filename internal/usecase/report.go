package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"SentiTrade/internal/domain/models"
	"SentiTrade/internal/domain/repository"
	"SentiTrade/internal/domain/service"
	"SentiTrade/pkg/logger"
)

// ReportHeader is printed at the top of every report page.
const ReportHeader = "Data Science Report: Trader Behavior & Market Sentiment"

var executiveTemplate = template.Must(template.New("executive").Funcs(templateFuncs).Parse(
	`This report analyzes {{.Trades}} trades to measure how market sentiment (Fear & Greed Index) relates to profitability and risk management.

**Key Findings:**
{{with .Best}}
1. **Strongest environment:** the highest average PnL ({{money .MeanPnL}} per trade) occurs during "{{.Band}}" markets.
{{end}}{{with .Worst}}
2. **Weakest environment:** "{{.Band}}" markets return the lowest average PnL ({{money .MeanPnL}} per trade).
{{end}}{{with .Volatile}}
3. **Hidden risk:** "{{.Band}}" carries the highest PnL volatility (standard deviation {{money .StdPnL}}), so its outcomes are the least predictable.
{{end}}{{with .LowWin}}
4. **Optimization opportunity:** "{{.Band}}" shows the lowest win rate ({{percent .WinRate}}). Position sizes there are the first candidate for reduction.
{{end}}`))

const methodologyText = `- **Data integration:** trade logs were joined with the daily Fear & Greed Index on the calendar date of each trade. Trades without a sentiment reading for that day were dropped.
- **Metrics:** win rate, mean and standard deviation of realized PnL, and average position size per sentiment band.
- **Constraints:** the data carries no leverage column, so Size USD acts as the proxy for conviction.
`

const recommendationsText = `- **Compound where outcomes are stable:** bands with a high win rate and low volatility suit consistent, lower-risk sizing.
- **Cut fat tails:** use tighter trailing stops in the most volatile band to keep upside momentum while limiting drawdowns seen in the distribution chart.
- **Scale by sentiment:** reduce position size when the index enters the band with the lowest win rate.
`

// Reporter assembles the PDF report from band statistics and the rendered
// chart set.
type Reporter struct {
	writer  service.DocumentWriter
	log     *logger.Logger
	metrics repository.Metrics
}

func NewReporter(w service.DocumentWriter, log *logger.Logger, m repository.Metrics) *Reporter {
	if log == nil {
		log = logger.Nop()
	}
	return &Reporter{writer: w, log: log, metrics: m}
}

// ExecutiveSummary fills the page-one narrative from the band statistics.
func ExecutiveSummary(stats models.Stats) (string, error) {
	data := struct {
		Trades                         int
		Best, Worst, Volatile, LowWin *models.BandStats
	}{Trades: stats.Totals.Count}

	pick := func(metric func(models.BandStats) models.Float, lowest bool) *models.BandStats {
		if bs, ok := extremeBand(stats.Bands, metric, lowest); ok {
			return &bs
		}
		return nil
	}
	data.Best = pick(meanPnL, false)
	data.Worst = pick(meanPnL, true)
	data.Volatile = pick(stdPnL, false)
	data.LowWin = pick(winRate, true)

	var b strings.Builder
	if err := executiveTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("executive summary: %w", err)
	}
	return b.String(), nil
}

// Build lays out the report: executive summary, methodology and
// recommendations, then one page per chart of the catalog found in chartDir.
func (r *Reporter) Build(stats models.Stats, chartDir string) (models.Report, error) {
	summary, err := ExecutiveSummary(stats)
	if err != nil {
		return models.Report{}, err
	}

	doc := models.Report{
		Header: ReportHeader,
		Sections: []models.ReportSection{
			{Title: "Executive Summary", Body: summary, NewPage: true},
			{Title: "1. Methodology & Data Sources", Banner: true, Body: methodologyText, NewPage: true},
			{Title: "2. Strategy Recommendations", Banner: true, Body: recommendationsText},
		},
	}
	for _, entry := range models.ChartCatalog() {
		doc.Sections = append(doc.Sections, models.ReportSection{
			Title:   entry.Title,
			Banner:  true,
			Caption: entry.Description,
			Image:   filepath.Join(chartDir, entry.File),
			NewPage: true,
		})
	}
	return doc, nil
}

// Write builds the report and hands it to the document writer.
func (r *Reporter) Write(ctx context.Context, path, chartDir string, stats models.Stats) error {
	start := time.Now()
	doc, err := r.Build(stats, chartDir)
	if err != nil {
		return err
	}
	if err := r.writer.Write(ctx, path, doc); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if r.metrics != nil {
		r.metrics.RecordStage("report", time.Since(start))
	}
	return nil
}
