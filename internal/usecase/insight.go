package usecase

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"SentiTrade/internal/domain/models"

	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
)

var templateFuncs = template.FuncMap{
	"money":   floatMoney,
	"percent": floatPercent,
	"dec": func(d decimal.Decimal) string {
		return formatMoney(d.InexactFloat64())
	},
}

var insightTemplate = template.Must(template.New("insight").Funcs(templateFuncs).Parse(
	`{{with .Best}}**Best sentiment:** {{.Band}} averages {{money .MeanPnL}} per trade over {{.Count}} trades.
{{end}}
{{with .Worst}}**Worst sentiment:** {{.Band}} averages {{money .MeanPnL}} per trade over {{.Count}} trades.
{{end}}
**Simulation:** starting from {{dec .Curve.Capital}} at {{.Curve.Risk}}x risk, the balance ends at {{dec .Final}}.
`))

// BuildInsight derives the best and worst band of a filtered set and renders
// the narrative as Markdown and HTML.
func BuildInsight(stats []models.BandStats, curve models.EquityCurve) (models.Insight, error) {
	in := models.Insight{BestMean: models.NaN(), WorstMean: models.NaN()}

	data := struct {
		Best, Worst *models.BandStats
		Curve       models.EquityCurve
		Final       decimal.Decimal
	}{Curve: curve, Final: curve.Final()}

	if best, ok := extremeBand(stats, meanPnL, false); ok {
		in.Best, in.BestMean = best.Band, best.MeanPnL
		data.Best = &best
	}
	if worst, ok := extremeBand(stats, meanPnL, true); ok {
		in.Worst, in.WorstMean = worst.Band, worst.MeanPnL
		data.Worst = &worst
	}

	var md strings.Builder
	if err := insightTemplate.Execute(&md, data); err != nil {
		return in, fmt.Errorf("insight: %w", err)
	}
	in.Markdown = md.String()

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(in.Markdown), &html); err != nil {
		return in, fmt.Errorf("insight: %w", err)
	}
	in.HTML = html.String()
	return in, nil
}
