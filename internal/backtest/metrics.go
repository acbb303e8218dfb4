package backtest

import (
	"math"
)

const (
	// tradingDaysPerYear annualizes per-bar returns in the Sharpe ratio.
	tradingDaysPerYear = 252

	// profitFactorCap stands in for an infinite profit factor when a run has
	// winning trades and no losing ones.
	profitFactorCap = 999.99
)

// computeMetrics derives the final Result from a completed run. A run with
// zero trades yields the empty result regardless of the equity curve.
func computeMetrics(s *state, initialCapital float64) *Result {
	if len(s.trades) == 0 {
		return emptyResult()
	}

	totalTrades := len(s.trades)
	var winning int
	var sumWins, sumLosses float64
	for _, t := range s.trades {
		if t.PnL > 0 {
			winning++
			sumWins += t.PnL
		} else if t.PnL < 0 {
			sumLosses += -t.PnL
		}
	}
	losing := totalTrades - winning

	winRate := float64(winning) / float64(totalTrades)

	avgWin := 0.0
	if winning > 0 {
		avgWin = sumWins / float64(winning)
	}
	avgLoss := 0.0
	if nLosses := countLosses(s); nLosses > 0 {
		avgLoss = sumLosses / float64(nLosses)
	}

	profitFactor := 0.0
	switch {
	case sumLosses > 0:
		profitFactor = sumWins / sumLosses
	case sumWins > 0:
		profitFactor = profitFactorCap
	}

	totalReturn := 0.0
	if initialCapital > 0 {
		totalReturn = (s.finalEquity() - initialCapital) / initialCapital
	}

	return &Result{
		TotalReturn:   round2(totalReturn * 100),
		SharpeRatio:   round2(sharpeRatio(s.equityCurve)),
		MaxDrawdown:   round2(maxDrawdown(s.equityCurve, initialCapital) * 100),
		WinRate:       round2(winRate * 100),
		ProfitFactor:  round2(profitFactor),
		TotalTrades:   totalTrades,
		WinningTrades: winning,
		LosingTrades:  losing,
		AvgWin:        round2(avgWin),
		AvgLoss:       round2(avgLoss),
		EquityCurve:   serializeCurve(s.equityCurve),
		Trades:        serializeTrades(s),
	}
}

// countLosses counts trades with strictly negative PnL. Break-even trades
// count toward losing_trades but not toward avg_loss.
func countLosses(s *state) int {
	var n int
	for _, t := range s.trades {
		if t.PnL < 0 {
			n++
		}
	}
	return n
}

// sharpeRatio annualizes mean per-bar return over its population standard
// deviation. Zero when fewer than two usable returns or zero volatility.
func sharpeRatio(curve []equityPoint) float64 {
	if len(curve) < 2 {
		return 0
	}

	var returns []float64
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev <= 0 {
			continue
		}
		returns = append(returns, (curve[i].Equity-prev)/prev)
	}
	if len(returns) < 2 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var variance float64
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(len(returns)))
	if std == 0 {
		return 0
	}

	return mean / std * math.Sqrt(tradingDaysPerYear)
}

// maxDrawdown tracks the largest peak-to-trough relative decline
// incrementally, with the peak seeded at the initial capital.
func maxDrawdown(curve []equityPoint, initialCapital float64) float64 {
	peak := initialCapital
	var maxDD float64
	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		if peak > 0 {
			if dd := (peak - p.Equity) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

func serializeCurve(curve []equityPoint) []CurvePoint {
	out := make([]CurvePoint, 0, len(curve))
	for _, p := range curve {
		out = append(out, CurvePoint{
			Timestamp: p.Timestamp,
			Equity:    round2(p.Equity),
		})
	}
	return out
}

func serializeTrades(s *state) []TradeRecord {
	out := make([]TradeRecord, 0, len(s.trades))
	for _, t := range s.trades {
		out = append(out, TradeRecord{
			Symbol:     t.Symbol,
			Side:       string(t.Side),
			EntryPrice: round2(t.EntryPrice),
			ExitPrice:  round2(t.ExitPrice),
			Quantity:   round4(t.Quantity),
			PnL:        round2(t.PnL),
			PnLPercent: round2(t.PnLPercent * 100),
		})
	}
	return out
}
