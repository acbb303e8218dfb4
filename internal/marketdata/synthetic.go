package marketdata

import (
	"context"
	"math"
	"math/rand"
	"time"

	"tradoverse/internal/domain"
	"tradoverse/internal/util"
)

// Synthetic random-walk parameters, matching the documented fallback model.
const (
	syntheticDrift      = 0.0005 // mean daily return
	syntheticVolatility = 0.02   // daily return stddev
	syntheticInitial    = 100.0  // starting price
)

// Compile-time interface check.
var _ Provider = (*SyntheticProvider)(nil)

// SyntheticProvider generates a geometric-like daily random walk. It never
// fails, which is what makes it usable as the fallback source: the engine
// trades fidelity for availability. Unseeded providers are non-deterministic;
// pass a seed for reproducible series.
type SyntheticProvider struct {
	initialPrice float64
	drift        float64
	volatility   float64
	seed         int64
	seeded       bool
	cal          *util.TradingCalendar
}

// SyntheticOption configures a SyntheticProvider.
type SyntheticOption func(*SyntheticProvider)

// WithSeed makes the generated series deterministic for a given request.
func WithSeed(seed int64) SyntheticOption {
	return func(p *SyntheticProvider) {
		p.seed = seed
		p.seeded = true
	}
}

// WithInitialPrice overrides the walk's starting price.
func WithInitialPrice(price float64) SyntheticOption {
	return func(p *SyntheticProvider) {
		p.initialPrice = price
	}
}

// NewSyntheticProvider creates a synthetic daily-bar generator with the
// default drift and volatility.
func NewSyntheticProvider(opts ...SyntheticOption) *SyntheticProvider {
	p := &SyntheticProvider{
		initialPrice: syntheticInitial,
		drift:        syntheticDrift,
		volatility:   syntheticVolatility,
		cal:          util.NewTradingCalendar(domain.MarketUS),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetBars generates one bar per weekday in [start, end). The close follows a
// random walk with drift; open, high, and low are perturbed independently
// around the close.
func (p *SyntheticProvider) GetBars(_ context.Context, symbol string, start, end time.Time) ([]domain.Bar, error) {
	seed := p.seed
	if !p.seeded {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	price := p.initialPrice
	var bars []domain.Bar

	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if !p.cal.IsTradingDay(d) {
			continue
		}

		dailyReturn := rng.NormFloat64()*p.volatility + p.drift
		price *= 1 + dailyReturn

		high := price * (1 + math.Abs(rng.NormFloat64()*0.01))
		low := price * (1 - math.Abs(rng.NormFloat64()*0.01))
		open := price * (1 + rng.NormFloat64()*0.005)
		volume := int64(1_000_000 + rng.Float64()*9_000_000)

		bars = append(bars, domain.Bar{
			Symbol:    symbol,
			Timestamp: d,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     price,
			Volume:    volume,
		})
	}
	return bars, nil
}
