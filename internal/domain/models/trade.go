package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTrade is one row of the trade history file. Cells are kept as text so a
// bad value can be reported per row.
type RawTrade struct {
	Line      int    `csv:"-"`
	Timestamp string `csv:"Timestamp IST"`
	Coin      string `csv:"Coin"`
	Side      string `csv:"Side"`
	SizeUSD   string `csv:"Size USD"`
	ClosedPnL string `csv:"Closed PnL"`
}

// RawSentiment is one row of the Fear & Greed file.
type RawSentiment struct {
	Line           int    `csv:"-"`
	Date           string `csv:"date"`
	Value          string `csv:"value"`
	Classification string `csv:"classification"`
}

// Sentiment is a parsed index reading for one day.
type Sentiment struct {
	Date  Date
	Value float64
	Class Band
}

// MergedRecord is a trade joined with the sentiment of its calendar day.
type MergedRecord struct {
	Timestamp     time.Time       `json:"timestamp"`
	Date          Date            `json:"date"`
	DayOfWeek     string          `json:"day_of_week"`
	Coin          string          `json:"coin"`
	Side          string          `json:"side"`
	SizeUSD       decimal.Decimal `json:"size_usd"`
	ClosedPnL     decimal.Decimal `json:"closed_pnl"`
	CumulativePnL decimal.Decimal `json:"cumulative_pnl"`
	FGValue       float64         `json:"fg_value"`
	FGClass       Band            `json:"fg_class"`
}

// PnL returns the realized PnL as float64 for statistics.
func (r MergedRecord) PnL() float64 { return r.ClosedPnL.InexactFloat64() }

// Size returns the position size as float64 for statistics.
func (r MergedRecord) Size() float64 { return r.SizeUSD.InexactFloat64() }

// Win reports whether the trade closed with a positive PnL.
func (r MergedRecord) Win() bool { return r.ClosedPnL.IsPositive() }
