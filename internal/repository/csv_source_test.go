package repository

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"SentiTrade/internal/domain/models"
	"SentiTrade/pkg/logger"
	"SentiTrade/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSource() *CSVSource {
	return NewCSVSource(logger.Nop(), metrics.New(prometheus.NewRegistry()))
}

func TestLoadTrades(t *testing.T) {
	rows, err := newSource().LoadTrades(context.Background(), "testdata/historical_data.csv")
	require.NoError(t, err)
	require.Len(t, rows, 6)

	first := rows[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, "05-01-2023 10:30", first.Timestamp)
	assert.Equal(t, "BTC", first.Coin)
	assert.Equal(t, "BUY", first.Side)
	assert.Equal(t, "168.01", first.SizeUSD)
	assert.Equal(t, "50", first.ClosedPnL)

	assert.Equal(t, "abc", rows[5].ClosedPnL, "cells stay raw text")
}

func TestLoadSentiment(t *testing.T) {
	rows, err := newSource().LoadSentiment(context.Background(), "testdata/fear_greed.csv")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, models.RawSentiment{Line: 2, Date: "2023-01-05", Value: "35", Classification: "Fear"}, rows[0])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := newSource().LoadTrades(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)

	var missing *models.MissingFileError
	require.True(t, errors.As(err, &missing))
	assert.Contains(t, missing.Path, "nope.csv")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadStripsBOM(t *testing.T) {
	p := filepath.Join(t.TempDir(), "fg.csv")
	body := append([]byte{0xEF, 0xBB, 0xBF}, []byte("date,value,classification\n2023-01-05,35,Fear\n")...)
	require.NoError(t, os.WriteFile(p, body, 0o644))

	rows, err := newSource().LoadSentiment(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2023-01-05", rows[0].Date)
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newSource().LoadTrades(ctx, "testdata/historical_data.csv")
	assert.ErrorIs(t, err, context.Canceled)
}
