package models

// ChartSpec names one chart of the static set and how the report captions it.
type ChartSpec struct {
	Key         string `json:"key"`
	File        string `json:"file"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Chart keys.
const (
	ChartCumulativePnL = "cumulative_pnl"
	ChartDistribution  = "pnl_distribution"
	ChartSizing        = "position_sizing"
	ChartVolatility    = "risk_volatility"
	ChartWinRate       = "win_rate_by_sentiment"
	ChartScatter       = "pnl_vs_size_scatter"
	ChartDaily         = "daily_performance"
)

// Dashboard chart names accepted by /api/charts/:name.
const (
	DashboardChartEquity       = "equity"
	DashboardChartDistribution = "distribution"
	DashboardChartSizing       = "sizing"
)

var chartCatalog = []ChartSpec{
	{ChartCumulativePnL, "cumulative_pnl.png", "Cumulative Performance",
		"The equity curve showing total portfolio growth over the analyzed period."},
	{ChartDaily, "daily_performance.png", "Daily Performance Analysis",
		"Total PnL broken down by day of the week. Identifies which days offer the best market conditions for this strategy."},
	{ChartVolatility, "risk_volatility.png", "Volatility Profile",
		"Standard deviation of PnL by sentiment zone. Higher bars indicate less predictable outcomes."},
	{ChartDistribution, "pnl_distribution.png", "Risk Distribution",
		"Spread of returns per sentiment zone, clipped to -500..1000 USD. Wider boxes and longer whiskers mark fatter tails."},
	{ChartScatter, "pnl_vs_size_scatter.png", "Risk-Reward Scatter",
		"Position size against realized PnL, colored by sentiment. The dashed line marks break-even."},
	{ChartSizing, "position_sizing.png", "Behavioral Analysis: Sizing",
		"Average position size (USD) across sentiment zones, showing whether the strategy scales up in greed."},
	{ChartWinRate, "win_rate_by_sentiment.png", "Win Rate Efficiency",
		"Share of winning trades by sentiment zone."},
}

// ChartCatalog returns the static chart set in report order.
func ChartCatalog() []ChartSpec {
	out := make([]ChartSpec, len(chartCatalog))
	copy(out, chartCatalog)
	return out
}
