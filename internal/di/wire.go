//go:build wireinject
// +build wireinject

package di

import (
	"SentiTrade/internal/usecase"
	"SentiTrade/pkg/config"
	"SentiTrade/pkg/server"

	"github.com/google/wire"
)

var pipelineSet = wire.NewSet(
	// Metrics
	ProvideRegistry,
	ProvideMetrics,

	// Loader and renderers
	ProvideTradeSource,
	ProvideChartRenderer,
	ProvideSummaryBuilder,
	ProvideDocumentWriter,

	// Use cases
	usecase.NewAligner,
	usecase.NewAggregator,
	usecase.NewReporter,
	usecase.NewPipeline,
)

// InitializePipeline wires the batch pipeline used by analyze and report.
func InitializePipeline(cfg *config.Config) (*usecase.Pipeline, error) {
	wire.Build(
		ProvideLogger,
		pipelineSet,
	)
	return &usecase.Pipeline{}, nil
}

// InitializeApp wires up all dependencies and returns the dashboard application.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		pipelineSet,

		// Dashboard
		ProvideCache,
		ProvideDatasetSource,
		usecase.NewDashboard,

		// HTTP
		ProvideHTTPHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
