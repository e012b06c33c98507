package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements repository.Metrics using Prometheus.
type Recorder struct {
	rowsLoaded     *prometheus.CounterVec
	rowsDropped    *prometheus.CounterVec
	chartsRendered *prometheus.CounterVec
	stageDuration  *prometheus.HistogramVec
}

// New creates a Prometheus recorder whose collectors are registered on reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		rowsLoaded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentitrade_rows_loaded_total",
				Help: "Rows read from input files",
			},
			[]string{"source"},
		),
		rowsDropped: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentitrade_rows_dropped_total",
				Help: "Rows discarded while loading or aligning",
			},
			[]string{"reason"},
		),
		chartsRendered: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentitrade_charts_rendered_total",
				Help: "Chart render attempts by outcome",
			},
			[]string{"chart", "result"},
		),
		stageDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sentitrade_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
	}
}

// RecordRowsLoaded adds n rows read from source.
func (r *Recorder) RecordRowsLoaded(source string, n int) {
	r.rowsLoaded.WithLabelValues(source).Add(float64(n))
}

// RecordRowsDropped adds n rows discarded for reason.
func (r *Recorder) RecordRowsDropped(reason string, n int) {
	if n <= 0 {
		return
	}
	r.rowsDropped.WithLabelValues(reason).Add(float64(n))
}

// RecordChart records one chart render with result "ok", "skipped" or "error".
func (r *Recorder) RecordChart(chart, result string) {
	r.chartsRendered.WithLabelValues(chart, result).Inc()
}

// RecordStage records how long a pipeline stage took.
func (r *Recorder) RecordStage(stage string, d time.Duration) {
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// Nop discards all measurements.
type Nop struct{}

func (Nop) RecordRowsLoaded(string, int)      {}
func (Nop) RecordRowsDropped(string, int)     {}
func (Nop) RecordChart(string, string)        {}
func (Nop) RecordStage(string, time.Duration) {}
