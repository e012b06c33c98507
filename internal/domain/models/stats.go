package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BandStats summarizes the merged records of one sentiment band.
// Means, std and win rate are NaN when the band is empty; std is also NaN
// with a single record.
type BandStats struct {
	Band     Band            `json:"band"`
	Count    int             `json:"count"`
	MeanPnL  Float           `json:"mean_pnl"`
	StdPnL   Float           `json:"std_pnl"`
	MeanSize Float           `json:"mean_size"`
	WinRate  Float           `json:"win_rate"`
	TotalPnL decimal.Decimal `json:"total_pnl"`
}

// WeekdayTotal is the summed PnL of one day of the week.
type WeekdayTotal struct {
	Day      time.Weekday    `json:"-"`
	Name     string          `json:"day"`
	TotalPnL decimal.Decimal `json:"total_pnl"`
}

// Totals are computed over the whole record set.
type Totals struct {
	Count    int             `json:"count"`
	TotalPnL decimal.Decimal `json:"total_pnl"`
	MeanPnL  Float           `json:"mean_pnl"`
	WinRate  Float           `json:"win_rate"`
}

// Stats is everything the aggregator derives from a merged table.
type Stats struct {
	Bands    []BandStats    `json:"bands"`
	Weekdays []WeekdayTotal `json:"weekdays"`
	Totals   Totals         `json:"totals"`
}

// Band returns the stats row for b.
func (s Stats) Band(b Band) (BandStats, bool) {
	for _, bs := range s.Bands {
		if bs.Band == b {
			return bs, true
		}
	}
	return BandStats{}, false
}
