package repository

import (
	"context"
	"time"

	"SentiTrade/internal/domain/models"
)

// TradeSource reads the two input tables. Missing files yield
// *models.MissingFileError.
type TradeSource interface {
	LoadTrades(ctx context.Context, path string) ([]models.RawTrade, error)
	LoadSentiment(ctx context.Context, path string) ([]models.RawSentiment, error)
}

type Metrics interface {
	RecordRowsLoaded(source string, n int)
	RecordRowsDropped(reason string, n int)
	RecordChart(chart, result string)
	RecordStage(stage string, d time.Duration)
}
