package strategy

import (
	"tradoverse/internal/domain"
)

// Compile-time interface check.
var _ Strategy = (*TrendFollowing)(nil)

// TrendFollowing trades breakouts: buy when price clears the rolling high of
// the lookback window, sell when it drops below the rolling low.
type TrendFollowing struct {
	lookback int
}

// NewTrendFollowing creates a TrendFollowing strategy. Recognized params:
// lookback (default 20).
func NewTrendFollowing(params Params) *TrendFollowing {
	return &TrendFollowing{
		lookback: params.Int("lookback", 20),
	}
}

// Name returns "trend_following".
func (s *TrendFollowing) Name() string { return "trend_following" }

// GenerateSignals compares the current price against the high and low of the
// preceding lookback window.
func (s *TrendFollowing) GenerateSignals(history map[string][]float64, idx int) map[string]domain.SignalType {
	signals := make(map[string]domain.SignalType, len(history))
	for symbol, prices := range history {
		if idx < s.lookback || idx >= len(prices) {
			signals[symbol] = domain.SignalHold
			continue
		}

		window := prices[idx-s.lookback : idx]
		high, low := window[0], window[0]
		for _, v := range window[1:] {
			if v > high {
				high = v
			}
			if v < low {
				low = v
			}
		}
		price := prices[idx]

		switch {
		case price > high:
			signals[symbol] = domain.SignalBuy
		case price < low:
			signals[symbol] = domain.SignalSell
		default:
			signals[symbol] = domain.SignalHold
		}
	}
	return signals
}
