package summary

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"SentiTrade/internal/domain/models"
	"SentiTrade/internal/domain/service"
	"SentiTrade/pkg/util"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	md "github.com/nao1215/markdown"
)

// Builder renders the analysis summary as Markdown.
type Builder struct{}

func New() *Builder { return &Builder{} }

var _ service.SummaryBuilder = (*Builder)(nil)

// Build lists PnL volatility, average size and win rate per band plus the
// total PnL. The volatility table is ordered from calmest to most volatile.
func (b *Builder) Build(stats models.Stats) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Analysis Summary")
	doc.PlainText(fmt.Sprintf("Merged trades: %s", humanize.Comma(int64(stats.Totals.Count))))

	doc.H2("A. Risk metrics (Std Dev of PnL)")
	doc.Table(md.TableSet{
		Header: []string{"Sentiment", "Std Dev ($)", "Trades"},
		Rows:   rows(byVolatility(stats.Bands), func(s models.BandStats) string { return money(s.StdPnL) }),
	})

	doc.H2("B. Avg Position Size")
	doc.Table(md.TableSet{
		Header: []string{"Sentiment", "Avg Size ($)", "Trades"},
		Rows:   rows(stats.Bands, func(s models.BandStats) string { return money(s.MeanSize) }),
	})

	doc.H2("C. Win Rate")
	doc.Table(md.TableSet{
		Header: []string{"Sentiment", "Win Rate", "Trades"},
		Rows:   rows(stats.Bands, func(s models.BandStats) string { return percent(s.WinRate) }),
	})

	doc.H2("D. Total PnL")
	doc.PlainText(util.FormatMoney(stats.Totals.TotalPnL.InexactFloat64()))

	return doc.String()
}

// Write stores the summary at path, creating parent directories.
func (b *Builder) Write(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	return nil
}

// RenderTerminal styles Markdown for an ANSI terminal.
func RenderTerminal(markdown string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("summary: terminal renderer: %w", err)
	}
	return r.Render(markdown)
}

func rows(stats []models.BandStats, value func(models.BandStats) string) [][]string {
	out := make([][]string, 0, len(stats))
	for _, s := range stats {
		out = append(out, []string{string(s.Band), value(s), humanize.Comma(int64(s.Count))})
	}
	return out
}

// byVolatility sorts ascending by std; undefined values go last.
func byVolatility(stats []models.BandStats) []models.BandStats {
	out := make([]models.BandStats, len(stats))
	copy(out, stats)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].StdPnL, out[j].StdPnL
		if !a.Valid() || !b.Valid() {
			return a.Valid() && !b.Valid()
		}
		return a < b
	})
	return out
}

func money(f models.Float) string {
	return util.FormatAmount(float64(f))
}

func percent(f models.Float) string {
	return util.FormatPercent(float64(f))
}
