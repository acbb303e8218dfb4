// Package backtest implements the simulation engine: it walks a price series
// bar by bar, mutates portfolio state under strategy signals with slippage
// and commission applied, and derives performance metrics from the finished
// trade list and equity curve.
package backtest

import (
	"math"
	"time"
)

// CurvePoint is one serialized equity-curve sample.
type CurvePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Equity    float64   `json:"equity"`
}

// TradeRecord is one serialized completed trade. Percentages are already
// multiplied by 100; prices and PnL are rounded to 2 decimals, quantity to 4.
type TradeRecord struct {
	Symbol     string  `json:"symbol"`
	Side       string  `json:"side"`
	EntryPrice float64 `json:"entry_price"`
	ExitPrice  float64 `json:"exit_price"`
	Quantity   float64 `json:"quantity"`
	PnL        float64 `json:"pnl"`
	PnLPercent float64 `json:"pnl_percent"`
}

// Result is the immutable output of a completed run. Percentage metrics
// (total_return, max_drawdown, win_rate, pnl_percent) are reported already
// multiplied by 100.
type Result struct {
	TotalReturn   float64       `json:"total_return"`
	SharpeRatio   float64       `json:"sharpe_ratio"`
	MaxDrawdown   float64       `json:"max_drawdown"`
	WinRate       float64       `json:"win_rate"`
	ProfitFactor  float64       `json:"profit_factor"`
	TotalTrades   int           `json:"total_trades"`
	WinningTrades int           `json:"winning_trades"`
	LosingTrades  int           `json:"losing_trades"`
	AvgWin        float64       `json:"avg_win"`
	AvgLoss       float64       `json:"avg_loss"`
	EquityCurve   []CurvePoint  `json:"equity_curve"`
	Trades        []TradeRecord `json:"trades"`
}

// emptyResult is the defined output for a run that produced no trades.
func emptyResult() *Result {
	return &Result{
		EquityCurve: []CurvePoint{},
		Trades:      []TradeRecord{},
	}
}

// round2 rounds to 2 decimal places, the precision used for monetary and
// percentage fields.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round4 rounds to 4 decimal places, the precision used for quantities.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
