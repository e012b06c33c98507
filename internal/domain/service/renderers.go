package service

import (
	"context"

	"SentiTrade/internal/domain/models"
)

// ChartRenderer draws the static chart set and the dashboard charts.
type ChartRenderer interface {
	// RenderAll writes every chart of models.ChartCatalog into dir and returns
	// the files written. Charts that fail are skipped and reported in err.
	RenderAll(ctx context.Context, dir string, records []models.MergedRecord, stats models.Stats) ([]string, error)
	Equity(curve models.EquityCurve) ([]byte, error)
	Distribution(records []models.MergedRecord) ([]byte, error)
	Sizing(stats []models.BandStats) ([]byte, error)
}

// SummaryBuilder renders the text summary of a run and stores it.
type SummaryBuilder interface {
	Build(stats models.Stats) string
	Write(path, content string) error
}

// DocumentWriter lays out a report document as PDF.
type DocumentWriter interface {
	Write(ctx context.Context, path string, doc models.Report) error
}
