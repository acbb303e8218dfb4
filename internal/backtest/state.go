package backtest

import (
	"time"

	"tradoverse/internal/domain"
)

// positionFraction is the share of current cash committed per new position.
const positionFraction = 0.10

// equityPoint is one internal equity-curve sample. Cash and positions value
// are kept alongside equity so the invariant equity == cash + positionsValue
// can be checked at any point.
type equityPoint struct {
	Timestamp      time.Time
	Equity         float64
	Cash           float64
	PositionsValue float64
}

// state is the mutable aggregate owned by one run: simulated date, cash,
// open positions, completed trades, and the equity curve. Never shared
// between runs.
type state struct {
	date        time.Time
	cash        float64
	positions   map[string]domain.Position
	trades      []domain.Trade
	equityCurve []equityPoint

	commission   float64
	slippage     float64
	sizeFraction float64
}

func newState(start time.Time, capital, commission, slippage, sizeFraction float64) *state {
	if sizeFraction <= 0 || sizeFraction > 1 {
		sizeFraction = positionFraction
	}
	return &state{
		date:         start,
		cash:         capital,
		positions:    make(map[string]domain.Position),
		commission:   commission,
		slippage:     slippage,
		sizeFraction: sizeFraction,
	}
}

// buy opens a long position in symbol at the bar close. Sizing targets a
// fixed fraction of current cash; quantity is computed at the raw close while
// the entry price carries slippage. The order is skipped, not partially
// filled, when the all-in cost would exceed available cash.
func (s *state) buy(symbol string, close float64) {
	if _, open := s.positions[symbol]; open {
		return
	}
	if close <= 0 {
		return
	}

	positionValue := s.cash * s.sizeFraction
	quantity := positionValue / close
	if quantity <= 0 {
		return
	}

	entryPrice := close * (1 + s.slippage)
	cost := quantity * entryPrice * (1 + s.commission)
	if cost > s.cash {
		return
	}

	s.cash -= cost
	s.positions[symbol] = domain.Position{
		Symbol:     symbol,
		Quantity:   quantity,
		EntryPrice: entryPrice,
		EntryDate:  s.date,
		Side:       domain.SideLong,
	}
}

// sell closes the open position in symbol, in full, at the bar close less
// slippage. No-op when no position is open.
func (s *state) sell(symbol string, close float64) {
	position, open := s.positions[symbol]
	if !open {
		return
	}

	exitPrice := close * (1 - s.slippage)
	proceeds := position.Quantity * exitPrice * (1 - s.commission)

	costBasis := position.CostBasis()
	pnl := proceeds - costBasis
	pnlPercent := 0.0
	if costBasis > 0 {
		pnlPercent = pnl / costBasis
	}

	s.trades = append(s.trades, domain.Trade{
		Symbol:     symbol,
		Side:       position.Side,
		EntryPrice: position.EntryPrice,
		ExitPrice:  exitPrice,
		Quantity:   position.Quantity,
		EntryDate:  position.EntryDate,
		ExitDate:   s.date,
		PnL:        pnl,
		PnLPercent: pnlPercent,
	})

	s.cash += proceeds
	delete(s.positions, symbol)
}

// markToMarket values every open position at the bar's close prices, appends
// an equity point, and advances the simulated date by one day.
func (s *state) markToMarket(timestamp time.Time, closes map[string]float64) {
	var positionsValue float64
	for symbol, position := range s.positions {
		if price, ok := closes[symbol]; ok {
			positionsValue += position.MarketValue(price)
		}
	}

	s.equityCurve = append(s.equityCurve, equityPoint{
		Timestamp:      timestamp,
		Equity:         s.cash + positionsValue,
		Cash:           s.cash,
		PositionsValue: positionsValue,
	})
	s.date = s.date.AddDate(0, 0, 1)
}

// finalEquity is the last recorded equity, or 0 for an empty curve.
func (s *state) finalEquity() float64 {
	if len(s.equityCurve) == 0 {
		return 0
	}
	return s.equityCurve[len(s.equityCurve)-1].Equity
}
