package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordRowsLoaded("trades", 10)
	r.RecordRowsDropped("unmatched_date", 2)
	r.RecordRowsDropped("unmatched_date", 0)
	r.RecordChart("cumulative_pnl", "ok")
	r.RecordStage("align", 10*time.Millisecond)

	assert.Equal(t, 10.0, testutil.ToFloat64(r.rowsLoaded.WithLabelValues("trades")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.rowsDropped.WithLabelValues("unmatched_date")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.chartsRendered.WithLabelValues("cumulative_pnl", "ok")))

	n, err := testutil.GatherAndCount(reg, "sentitrade_stage_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecorderOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
