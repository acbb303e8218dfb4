// Package strategy defines signal-generating trading strategies and a factory
// for constructing them by identifier. Strategies are pure: they read price
// history and an index, never portfolio state.
package strategy

import (
	"tradoverse/internal/domain"
)

// Strategy maps price history and the current bar index to a per-symbol
// signal. history holds closing prices per symbol; idx is the bar being
// evaluated. Implementations must return hold, never an error, when idx
// predates their required warm-up window.
type Strategy interface {
	// Name returns the strategy's identifier.
	Name() string

	// GenerateSignals returns a signal for every symbol in history.
	GenerateSignals(history map[string][]float64, idx int) map[string]domain.SignalType
}

// Params carries strategy-specific numeric options. Unrecognized keys are
// ignored; missing keys fall back to the strategy's defaults.
type Params map[string]float64

// Int returns the parameter as an int, or def when absent or non-positive.
func (p Params) Int(key string, def int) int {
	if v, ok := p[key]; ok && v > 0 {
		return int(v)
	}
	return def
}

// Float returns the parameter, or def when absent or non-positive.
func (p Params) Float(key string, def float64) float64 {
	if v, ok := p[key]; ok && v > 0 {
		return v
	}
	return def
}

// New constructs the strategy for the given kind. Unknown or unsupported
// kinds (including arbitrage and ml_based, which have no dedicated
// implementation) fall back to momentum.
func New(kind domain.StrategyKind, params Params) Strategy {
	switch kind {
	case domain.StrategyMeanReversion:
		return NewMeanReversion(params)
	case domain.StrategyTrendFollowing:
		return NewTrendFollowing(params)
	default:
		return NewMomentum(params)
	}
}

// mean averages a window of prices.
func mean(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	var sum float64
	for _, v := range window {
		sum += v
	}
	return sum / float64(len(window))
}
