package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"SentiTrade/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestLimiterRefills(t *testing.T) {
	now := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)
	lim := NewLimiter(2, 1)
	lim.now = func() time.Time { return now }

	assert.True(t, lim.Allow("a"))
	assert.True(t, lim.Allow("a"))
	assert.False(t, lim.Allow("a"))
	assert.True(t, lim.Allow("b"), "buckets are per key")

	now = now.Add(1500 * time.Millisecond)
	assert.True(t, lim.Allow("a"))
	assert.False(t, lim.Allow("a"))

	now = now.Add(time.Hour)
	assert.True(t, lim.Allow("a"))
	assert.True(t, lim.Allow("a"))
	assert.False(t, lim.Allow("a"), "capped at burst")
}

func TestLimiterDropsRefilledBuckets(t *testing.T) {
	now := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)
	lim := NewLimiter(2, 1)
	lim.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		lim.Allow(fmt.Sprintf("10.0.0.%d", i))
	}
	assert.False(t, lim.Allow("10.0.0.1") && lim.Allow("10.0.0.1"))
	assert.Len(t, lim.buckets, 100)

	now = now.Add(sweepInterval)
	assert.True(t, lim.Allow("10.0.0.200"))
	assert.Len(t, lim.buckets, 1, "idle clients are forgotten")

	assert.True(t, lim.Allow("10.0.0.1"))
	assert.True(t, lim.Allow("10.0.0.1"))
	assert.False(t, lim.Allow("10.0.0.1"), "a recreated bucket still holds only the burst")
}

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		RateLimit(NewLimiter(1, 0.001), logger.Nop()))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
