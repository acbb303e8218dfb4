package backtest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tradoverse/internal/config"
	"tradoverse/internal/domain"
	"tradoverse/internal/marketdata"
	"tradoverse/internal/strategy"
)

// Phase is the engine's position in its linear run lifecycle. Transitions
// only move forward; a run is a single pass.
type Phase string

const (
	PhaseInitialized     Phase = "initialized"
	PhaseDataReady       Phase = "data_ready"
	PhaseSimulating      Phase = "simulating"
	PhaseMetricsComputed Phase = "metrics_computed"
)

// Validation errors surfaced before a simulation starts.
var (
	ErrInvalidCapital   = errors.New("initial capital must be positive")
	ErrInvalidDateRange = errors.New("start date must precede end date")
)

// Request describes one backtest run. Symbols is an ordered set; execution
// follows its order so runs on deterministic data are reproducible.
type Request struct {
	Symbols        []string
	Strategy       domain.StrategyKind
	Start          time.Time
	End            time.Time
	InitialCapital float64
	Params         strategy.Params
}

// Engine runs backtests. Each run owns its state exclusively; construct one
// Engine per concurrent run (the phase tracker is per-Engine, not per-call).
type Engine struct {
	source   marketdata.Provider // nil means synthetic-only
	fallback *marketdata.SyntheticProvider

	defaultCapital float64
	commission     float64
	slippage       float64
	sizeFraction   float64
	maxWorkers     int

	progress func(done, total int)
	log      *slog.Logger
	phase    Phase
}

// Option configures an Engine.
type Option func(*Engine)

// WithProgress installs a callback invoked after every simulated bar.
func WithProgress(fn func(done, total int)) Option {
	return func(e *Engine) { e.progress = fn }
}

// WithFallback overrides the synthetic fallback provider, mainly so tests
// can seed it.
func WithFallback(p *marketdata.SyntheticProvider) Option {
	return func(e *Engine) { e.fallback = p }
}

// NewEngine creates an Engine taking cost parameters from cfg. source may be
// nil, in which case every series is synthesized.
func NewEngine(source marketdata.Provider, cfg *config.Config, opts ...Option) *Engine {
	e := &Engine{
		source:         source,
		fallback:       marketdata.NewSyntheticProvider(),
		defaultCapital: cfg.Backtest.InitialCapital,
		commission:     cfg.Backtest.Commission,
		slippage:       cfg.Backtest.Slippage,
		sizeFraction:   cfg.Backtest.PositionFraction,
		maxWorkers:     cfg.Fetch.MaxWorkers,
		log:            slog.Default().With("component", "backtest"),
		phase:          PhaseInitialized,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Phase reports the engine's lifecycle phase for the most recent run.
func (e *Engine) Phase() Phase { return e.phase }

// Run executes one backtest to completion. Data-acquisition failures are
// absorbed by synthetic substitution; only invalid configuration is surfaced
// as an error. Zero usable bars is not an error: it yields the empty result.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	e.phase = PhaseInitialized

	if req.InitialCapital < 0 {
		return nil, ErrInvalidCapital
	}
	capital := req.InitialCapital
	if capital == 0 {
		capital = e.defaultCapital
	}
	if capital <= 0 {
		return nil, ErrInvalidCapital
	}
	if !req.Start.Before(req.End) {
		return nil, ErrInvalidDateRange
	}
	if len(req.Symbols) == 0 {
		return emptyResult(), nil
	}

	series := marketdata.Fetch(ctx, e.source, e.fallback, req.Symbols, req.Start, req.End, e.maxWorkers)
	e.phase = PhaseDataReady

	// Align all series to the shortest one so indices are comparable.
	n := -1
	for _, symbol := range req.Symbols {
		if m := len(series[symbol]); n < 0 || m < n {
			n = m
		}
	}
	if n <= 0 {
		return emptyResult(), nil
	}

	closes := make(map[string][]float64, len(req.Symbols))
	for _, symbol := range req.Symbols {
		prices := make([]float64, n)
		for i, bar := range series[symbol][:n] {
			prices[i] = bar.Close
		}
		closes[symbol] = prices
	}

	strat := strategy.New(req.Strategy, req.Params)
	st := newState(req.Start, capital, e.commission, e.slippage, e.sizeFraction)

	e.phase = PhaseSimulating
	e.log.Info("simulation started",
		"strategy", strat.Name(), "symbols", len(req.Symbols), "bars", n, "capital", capital)

	barCloses := make(map[string]float64, len(req.Symbols))
	for i := 0; i < n; i++ {
		signals := strat.GenerateSignals(closes, i)

		for _, symbol := range req.Symbols {
			price := closes[symbol][i]
			switch signals[symbol] {
			case domain.SignalBuy:
				st.buy(symbol, price)
			case domain.SignalSell:
				st.sell(symbol, price)
			}
		}

		// Positions still open on the last bar are liquidated so every
		// entered position produces a trade record.
		if i == n-1 {
			for _, symbol := range req.Symbols {
				st.sell(symbol, closes[symbol][i])
			}
		}

		for _, symbol := range req.Symbols {
			barCloses[symbol] = closes[symbol][i]
		}
		st.markToMarket(series[req.Symbols[0]][i].Timestamp, barCloses)

		if e.progress != nil {
			e.progress(i+1, n)
		}
	}

	result := computeMetrics(st, capital)
	e.phase = PhaseMetricsComputed
	e.log.Info("simulation finished",
		"trades", result.TotalTrades, "total_return_pct", result.TotalReturn)

	return result, nil
}
