package pdf

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"SentiTrade/internal/domain/models"
	"SentiTrade/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, 10, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "cumulative_pnl.png")
	writePNG(t, img)

	doc := models.Report{
		Header: "Data Science Report: Trader Behavior & Market Sentiment",
		Sections: []models.ReportSection{
			{Title: "Executive Summary", NewPage: true, Body: "Intro paragraph.\n\n**Key Findings:**\n\n1. First\n2. Second\n"},
			{Title: "1. Methodology", Banner: true, NewPage: true, Body: "- one\n- *two*\n"},
			{Title: "Cumulative Performance", Banner: true, NewPage: true, Caption: "Equity.", Image: img},
			{Title: "Missing Chart", Banner: true, NewPage: true, Image: filepath.Join(dir, "nope.png")},
		},
	}

	out := filepath.Join(dir, "report", "ds_report.pdf")
	require.NoError(t, NewWriter(logger.Nop()).Write(context.Background(), out, doc))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))
	pages := bytes.Count(b, []byte("/Type /Page")) - bytes.Count(b, []byte("/Type /Pages"))
	assert.Equal(t, 3, pages)
}

func TestWriteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewWriter(nil).Write(ctx, filepath.Join(t.TempDir(), "x.pdf"), models.Report{})
	assert.ErrorIs(t, err, context.Canceled)
}
