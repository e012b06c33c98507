package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"SentiTrade/internal/domain/models"
	"SentiTrade/internal/usecase"
	"SentiTrade/pkg/cache"
	"SentiTrade/pkg/config"
	xhttp "SentiTrade/pkg/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dataset struct{ err error }

func (d dataset) Dataset(context.Context) ([]models.MergedRecord, error) {
	if d.err != nil {
		return nil, d.err
	}
	t := time.Date(2023, 1, 5, 10, 30, 0, 0, time.UTC)
	return []models.MergedRecord{{Timestamp: t, Date: models.DateOf(t), FGClass: models.Fear}}, nil
}

func newApp(t *testing.T, src usecase.DatasetSource) (*App, *cache.MemoryCache) {
	t.Helper()
	cfg := config.Default()
	cfg.Server.ShutdownTimeout = time.Second
	mc := cache.NewMemoryCache()
	dash := usecase.NewDashboard(src, mc, nil, cfg, nil)
	srv := xhttp.NewServer(nil, nil, xhttp.WithHost("127.0.0.1"), xhttp.WithPort(0))
	return New(cfg, srv, dash, mc, nil), mc
}

func TestRunStopsOnCancel(t *testing.T) {
	app, _ := newApp(t, dataset{})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	require.NoError(t, app.Run(ctx))
}

func TestRunFailsWithoutData(t *testing.T) {
	missing := &models.MissingFileError{Path: "trades.csv"}
	app, mc := newApp(t, dataset{err: missing})

	err := app.Run(context.Background())
	var mfe *models.MissingFileError
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, "trades.csv", mfe.Path)
	assert.ErrorIs(t, err, usecase.ErrDatasetUnavailable)
	assert.NoError(t, mc.Close(), "closing twice is safe")
}
