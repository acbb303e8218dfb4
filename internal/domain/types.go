// Package domain defines the shared value types used across the tradoverse
// backtesting platform: OHLCV bars, trading signals, strategy identifiers,
// positions, and completed trades.
package domain

import "time"

// Market identifies the market a symbol trades on.
type Market string

const (
	MarketUS Market = "us"
)

// Bar is a single OHLCV bar (one trading day) for a symbol.
type Bar struct {
	Symbol    string
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// SignalType is the per-symbol output of a strategy for one bar.
type SignalType string

const (
	SignalBuy  SignalType = "buy"
	SignalSell SignalType = "sell"
	SignalHold SignalType = "hold"
)

// StrategyKind enumerates the strategy identifiers accepted by a backtest
// request. Kinds without a concrete implementation fall back to momentum.
type StrategyKind string

const (
	StrategyMomentum       StrategyKind = "momentum"
	StrategyMeanReversion  StrategyKind = "mean_reversion"
	StrategyTrendFollowing StrategyKind = "trend_following"
	StrategyArbitrage      StrategyKind = "arbitrage"
	StrategyMLBased        StrategyKind = "ml_based"
)

// Side is the direction of a position or trade.
type Side string

const (
	SideLong  Side = "long"
	SideShort Side = "short"
)

// Position is an open holding in a single symbol. The portfolio keeps at
// most one position per symbol; a sell always closes it in full.
type Position struct {
	Symbol     string
	Quantity   float64
	EntryPrice float64
	EntryDate  time.Time
	Side       Side
}

// MarketValue returns the position's value at the given price.
func (p Position) MarketValue(price float64) float64 {
	return p.Quantity * price
}

// CostBasis returns the capital committed at entry, before fees.
func (p Position) CostBasis() float64 {
	return p.Quantity * p.EntryPrice
}

// Trade is an immutable record of a completed round trip. It is created when
// a position closes and never mutated afterwards.
type Trade struct {
	Symbol     string
	Side       Side
	EntryPrice float64
	ExitPrice  float64
	Quantity   float64
	EntryDate  time.Time
	ExitDate   time.Time
	PnL        float64
	PnLPercent float64
}
