package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquityPoint is the simulated balance right after a trade.
type EquityPoint struct {
	Timestamp time.Time       `json:"timestamp"`
	Balance   decimal.Decimal `json:"balance"`
}

// EquityCurve is the result of the balance simulator.
type EquityCurve struct {
	Capital decimal.Decimal `json:"capital"`
	Risk    decimal.Decimal `json:"risk"`
	Points  []EquityPoint   `json:"points"`
}

// Final is the balance after the last trade, or the starting capital.
func (c EquityCurve) Final() decimal.Decimal {
	if len(c.Points) == 0 {
		return c.Capital
	}
	return c.Points[len(c.Points)-1].Balance
}

// KPI is one dashboard tile.
type KPI struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value Float  `json:"value"`
	Text  string `json:"text"`
}

// Insight names the best and worst performing bands of a filtered set.
type Insight struct {
	Best      Band   `json:"best"`
	BestMean  Float  `json:"best_mean_pnl"`
	Worst     Band   `json:"worst"`
	WorstMean Float  `json:"worst_mean_pnl"`
	Markdown  string `json:"markdown"`
	HTML      string `json:"html"`
}

// Dashboard is the payload of /api/dashboard.
type Dashboard struct {
	Filter  Filter      `json:"filter"`
	KPIs    []KPI       `json:"kpis"`
	Equity  EquityCurve `json:"equity"`
	Stats   []BandStats `json:"stats"`
	Insight Insight     `json:"insight"`
}

// Options describes the filter bounds and defaults of the loaded data.
type Options struct {
	MinDate        Date    `json:"min_date"`
	MaxDate        Date    `json:"max_date"`
	Bands          []Band  `json:"bands"`
	DefaultCapital float64 `json:"default_capital"`
	DefaultRisk    float64 `json:"default_risk"`
	RiskMin        float64 `json:"risk_min"`
	RiskMax        float64 `json:"risk_max"`
	Rows           int     `json:"rows"`
}
