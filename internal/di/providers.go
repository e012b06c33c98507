package di

import (
	"context"
	"fmt"
	"time"

	"SentiTrade/internal/domain/repository"
	"SentiTrade/internal/domain/service"
	"SentiTrade/internal/handler/api"
	internalrepo "SentiTrade/internal/repository"
	"SentiTrade/internal/service/chart"
	"SentiTrade/internal/service/pdf"
	"SentiTrade/internal/service/summary"
	"SentiTrade/internal/usecase"
	"SentiTrade/pkg/cache"
	"SentiTrade/pkg/config"
	xhttp "SentiTrade/pkg/http"
	"SentiTrade/pkg/logger"
	"SentiTrade/pkg/metrics"
	"SentiTrade/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ProvideLogger builds the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(logger.String("env", cfg.Environment)), nil
}

// ProvideRegistry creates the Prometheus registry shared by the recorder and
// the HTTP layer.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideTradeSource creates the CSV loader.
func ProvideTradeSource(l *logger.Logger, m repository.Metrics) repository.TradeSource {
	return internalrepo.NewCSVSource(l, m)
}

func ProvideChartRenderer(l *logger.Logger, m repository.Metrics) service.ChartRenderer {
	return chart.New(l, m)
}

func ProvideSummaryBuilder() service.SummaryBuilder {
	return summary.New()
}

func ProvideDocumentWriter(l *logger.Logger) service.DocumentWriter {
	return pdf.NewWriter(l)
}

// ProvideDatasetSource lets the dashboard load through the batch pipeline.
func ProvideDatasetSource(p *usecase.Pipeline) usecase.DatasetSource {
	return p
}

// ProvideCache creates the memo cache: in-memory, layered over Redis when
// enabled. An unreachable Redis degrades to memory only.
func ProvideCache(cfg *config.Config, l *logger.Logger) cache.Service {
	mem := cache.NewMemoryCache(
		cache.WithMemoryMaxSize(cfg.Cache.MemorySize),
		cache.WithMemoryCleanup(time.Minute),
		cache.WithMemoryDefaultTTL(cfg.Cache.TTL),
	)
	if !cfg.Cache.Redis.Enabled {
		return mem
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rc, err := cache.NewRedisCache(ctx,
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		l.Warn("redis unavailable, using memory cache only",
			logger.String("host", cfg.Cache.Redis.Host),
			logger.Int("port", cfg.Cache.Redis.Port),
			logger.Error(err),
		)
		return mem
	}
	return cache.NewLayeredCache(mem, rc)
}

// ProvideHTTPHandler creates the dashboard route set.
func ProvideHTTPHandler(l *logger.Logger, dash *usecase.Dashboard, cfg *config.Config) xhttp.Handler {
	return api.NewDashboardEchoHandler(l, dash, cfg)
}

// ProvideHTTPServer creates the echo server with metrics when enabled.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, l *logger.Logger, reg *prometheus.Registry) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path, reg, reg))
	}
	return xhttp.NewServer(h, l, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	srv *xhttp.Server,
	dash *usecase.Dashboard,
	c cache.Service,
	l *logger.Logger,
) *server.App {
	return server.New(cfg, srv, dash, c, l)
}
