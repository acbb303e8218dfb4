package strategy

import (
	"math"

	"tradoverse/internal/domain"
)

// Compile-time interface check.
var _ Strategy = (*MeanReversion)(nil)

// MeanReversion trades Bollinger-band touches: buy below the lower band,
// sell above the upper band.
type MeanReversion struct {
	period int
	stdDev float64
}

// NewMeanReversion creates a MeanReversion strategy. Recognized params:
// period (default 20), std_dev band multiplier (default 2.0).
func NewMeanReversion(params Params) *MeanReversion {
	return &MeanReversion{
		period: params.Int("period", 20),
		stdDev: params.Float("std_dev", 2.0),
	}
}

// Name returns "mean_reversion".
func (s *MeanReversion) Name() string { return "mean_reversion" }

// GenerateSignals compares the current price against bands built from the
// rolling mean and population standard deviation of the preceding window.
func (s *MeanReversion) GenerateSignals(history map[string][]float64, idx int) map[string]domain.SignalType {
	signals := make(map[string]domain.SignalType, len(history))
	for symbol, prices := range history {
		if idx < s.period || idx >= len(prices) {
			signals[symbol] = domain.SignalHold
			continue
		}

		window := prices[idx-s.period : idx]
		ma := mean(window)
		std := stddev(window, ma)

		upper := ma + s.stdDev*std
		lower := ma - s.stdDev*std
		price := prices[idx]

		switch {
		case price < lower:
			signals[symbol] = domain.SignalBuy
		case price > upper:
			signals[symbol] = domain.SignalSell
		default:
			signals[symbol] = domain.SignalHold
		}
	}
	return signals
}

// stddev is the population standard deviation of window around ma.
func stddev(window []float64, ma float64) float64 {
	if len(window) == 0 {
		return 0
	}
	var sum float64
	for _, v := range window {
		d := v - ma
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(window)))
}
