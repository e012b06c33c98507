package util

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// TradeTimestampLayout is the day-month-year hour:minute layout of trade exports.
// Single-digit day and month are accepted.
const TradeTimestampLayout = "2-1-2006 15:04"

// DateLayout is the ISO calendar date layout used for filters and output.
const DateLayout = "2006-01-02"

// ParseTradeTimestamp parses a trade timestamp with TradeTimestampLayout.
// Surrounding whitespace is ignored. Returns (t, true) on success.
func ParseTradeTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(TradeTimestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseCalendarDate parses a loosely formatted date (ISO date, RFC3339, "02 Jan 2006",
// unix seconds) and truncates it to midnight UTC.
func ParseCalendarDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil {
		return StartOfDay(time.Unix(ts, 0).UTC()), true
	}
	t, err := cast.ToTimeE(s)
	if err != nil {
		return time.Time{}, false
	}
	return StartOfDay(t), true
}

// StartOfDay drops the clock part of t, keeping its calendar date in UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
