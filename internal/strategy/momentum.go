package strategy

import (
	"tradoverse/internal/domain"
)

// Compile-time interface check.
var _ Strategy = (*Momentum)(nil)

// Momentum compares a short moving average against a long one: buy when the
// short MA runs more than 2% above the long MA, sell when more than 2% below.
type Momentum struct {
	shortPeriod int
	longPeriod  int
}

// NewMomentum creates a Momentum strategy. Recognized params: short_period
// (default 10), long_period (default 30).
func NewMomentum(params Params) *Momentum {
	return &Momentum{
		shortPeriod: params.Int("short_period", 10),
		longPeriod:  params.Int("long_period", 30),
	}
}

// Name returns "momentum".
func (s *Momentum) Name() string { return "momentum" }

// GenerateSignals emits buy/sell/hold per symbol. Holds every symbol until
// idx reaches the long window; the averages cover the window ending at the
// previous bar, idx itself excluded.
func (s *Momentum) GenerateSignals(history map[string][]float64, idx int) map[string]domain.SignalType {
	signals := make(map[string]domain.SignalType, len(history))
	for symbol, prices := range history {
		if idx < s.longPeriod || idx > len(prices) {
			signals[symbol] = domain.SignalHold
			continue
		}

		shortMA := mean(prices[idx-s.shortPeriod : idx])
		longMA := mean(prices[idx-s.longPeriod : idx])

		switch {
		case shortMA > longMA*1.02:
			signals[symbol] = domain.SignalBuy
		case shortMA < longMA*0.98:
			signals[symbol] = domain.SignalSell
		default:
			signals[symbol] = domain.SignalHold
		}
	}
	return signals
}
