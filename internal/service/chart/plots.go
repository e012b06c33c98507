package chart

import (
	"fmt"
	"image/color"

	"SentiTrade/internal/domain/models"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	distributionMin = -500
	distributionMax = 1000
)

var (
	green = color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	red   = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	blue  = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	gray  = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// bandColors runs from fear to greed.
var bandColors = map[models.Band]color.Color{
	models.ExtremeFear:  color.RGBA{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
	models.Fear:         color.RGBA{R: 0x3b, G: 0x52, B: 0x8b, A: 0xff},
	models.Neutral:      color.RGBA{R: 0x21, G: 0x91, B: 0x8c, A: 0xff},
	models.Greed:        color.RGBA{R: 0x5e, G: 0xc9, B: 0x62, A: 0xff},
	models.ExtremeGreed: color.RGBA{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
}

func bandNames() []string {
	bands := models.Bands()
	names := make([]string, len(bands))
	for i, b := range bands {
		names[i] = string(b)
	}
	return names
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

// CumulativePnL plots the running PnL over time.
func CumulativePnL(records []models.MergedRecord) (*plot.Plot, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	xys := make(plotter.XYs, len(records))
	for i, r := range records {
		xys[i].X = float64(r.Timestamp.Unix())
		xys[i].Y = r.CumulativePnL.InexactFloat64()
	}

	p := newPlot("Cumulative PnL Over Time", "Date", "Cumulative PnL (USD)")
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("cumulative pnl: %w", err)
	}
	line.LineStyle.Color = green
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)
	return p, nil
}

// EquityCurve plots the simulated account balance.
func EquityCurve(curve models.EquityCurve) (*plot.Plot, error) {
	if len(curve.Points) == 0 {
		return nil, ErrNoData
	}
	xys := make(plotter.XYs, len(curve.Points))
	for i, pt := range curve.Points {
		xys[i].X = float64(pt.Timestamp.Unix())
		xys[i].Y = pt.Balance.InexactFloat64()
	}

	p := newPlot(fmt.Sprintf("Account Growth (Starting $%s)", curve.Capital.StringFixed(0)), "Date", "Account Balance ($)")
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("equity curve: %w", err)
	}
	line.LineStyle.Color = green
	line.LineStyle.Width = vg.Points(3)
	p.Add(line)
	return p, nil
}

// PnLDistribution draws one box per non-empty band. When clip is set the y
// axis is limited to the -500..1000 window.
func PnLDistribution(records []models.MergedRecord, clip bool) (*plot.Plot, error) {
	groups := make(map[models.Band]plotter.Values)
	for _, r := range records {
		groups[r.FGClass] = append(groups[r.FGClass], r.PnL())
	}

	p := newPlot("PnL Distribution Risk Profile by Sentiment", "Market Sentiment", "Closed PnL Distribution")
	drawn := 0
	for i, b := range models.Bands() {
		vs := groups[b]
		if len(vs) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(i), vs)
		if err != nil {
			return nil, fmt.Errorf("distribution %s: %w", b, err)
		}
		box.FillColor = bandColors[b]
		p.Add(box)
		drawn++
	}
	if drawn == 0 {
		return nil, ErrNoData
	}
	p.NominalX(bandNames()...)
	p.X.Min, p.X.Max = -0.5, float64(len(models.Bands()))-0.5
	if clip {
		p.Y.Min = distributionMin
		p.Y.Max = distributionMax
	}
	return p, nil
}

// PositionSizing bars the mean position size per band.
func PositionSizing(stats []models.BandStats) (*plot.Plot, error) {
	return bandBars(stats, "Average Position Size (USD) by Sentiment", "Sentiment Zone", "Avg Position Size ($)",
		func(s models.BandStats) models.Float { return s.MeanSize }, blue)
}

// RiskVolatility bars the PnL standard deviation per band.
func RiskVolatility(stats []models.BandStats) (*plot.Plot, error) {
	return bandBars(stats, "PnL Volatility (Standard Deviation) by Sentiment", "Sentiment Classification", "Std Dev of PnL ($)",
		func(s models.BandStats) models.Float { return s.StdPnL }, red)
}

// WinRate bars the win rate per band on a fixed 0..1 axis.
func WinRate(stats []models.BandStats) (*plot.Plot, error) {
	p, err := bandBars(stats, "Win Rate % by Sentiment", "Sentiment", "Win Rate (0.0 - 1.0)",
		func(s models.BandStats) models.Float { return s.WinRate }, blue)
	if err != nil {
		return nil, err
	}
	p.Y.Min = 0
	p.Y.Max = 1
	return p, nil
}

// bandBars draws one bar per band in fixed order. Undefined values draw as
// an empty bar.
func bandBars(stats []models.BandStats, title, xLabel, yLabel string, value func(models.BandStats) models.Float, c color.Color) (*plot.Plot, error) {
	if len(stats) == 0 {
		return nil, ErrNoData
	}
	byBand := make(map[models.Band]models.BandStats, len(stats))
	for _, s := range stats {
		byBand[s.Band] = s
	}

	vs := make(plotter.Values, 0, 5)
	defined := 0
	for _, b := range models.Bands() {
		v := value(byBand[b])
		if v.Valid() {
			defined++
		}
		vs = append(vs, v.Or(0))
	}
	if defined == 0 {
		return nil, ErrNoData
	}

	p := newPlot(title, xLabel, yLabel)
	bars, err := plotter.NewBarChart(vs, vg.Points(40))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", title, err)
	}
	bars.Color = c
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(bandNames()...)
	return p, nil
}

// PnLVsSize scatters position size against PnL, one series per band, with a
// dashed break-even line.
func PnLVsSize(records []models.MergedRecord) (*plot.Plot, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	groups := make(map[models.Band]plotter.XYs)
	for _, r := range records {
		groups[r.FGClass] = append(groups[r.FGClass], plotter.XY{X: r.Size(), Y: r.PnL()})
	}

	p := newPlot("Risk-Reward: Position Size vs PnL", "Position Size ($)", "Closed PnL ($)")
	p.Legend.Top = true
	for _, b := range models.Bands() {
		xys := groups[b]
		if len(xys) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("scatter %s: %w", b, err)
		}
		sc.GlyphStyle.Color = withAlpha(bandColors[b], 0x99)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(sc)
		p.Legend.Add(string(b), sc)
	}
	p.Add(zeroLine(gray, true))
	return p, nil
}

// DailyPerformance bars total PnL for Monday..Sunday.
func DailyPerformance(days []models.WeekdayTotal) (*plot.Plot, error) {
	if len(days) == 0 {
		return nil, ErrNoData
	}
	vs := make(plotter.Values, len(days))
	names := make([]string, len(days))
	for i, d := range days {
		vs[i] = d.TotalPnL.InexactFloat64()
		names[i] = d.Name
	}

	p := newPlot("Total PnL by Day of Week", "Day of Week", "Total Closed PnL ($)")
	bars, err := plotter.NewBarChart(vs, vg.Points(40))
	if err != nil {
		return nil, fmt.Errorf("daily performance: %w", err)
	}
	bars.Color = blue
	bars.LineStyle.Width = 0
	p.Add(bars, zeroLine(color.Black, false))
	p.NominalX(names...)
	return p, nil
}

func zeroLine(c color.Color, dashed bool) *plotter.Function {
	f := plotter.NewFunction(func(float64) float64 { return 0 })
	f.Color = c
	f.Width = vg.Points(1)
	if dashed {
		f.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	}
	return f
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}
