package util

import (
	"time"

	"tradoverse/internal/domain"
)

// TradingCalendar provides trading-day awareness for a specific market.
// Daily backtests only need to know which calendar days trade, so weekends
// are the only exclusion; exchange holidays are not modelled.
type TradingCalendar struct {
	market domain.Market
}

// NewTradingCalendar creates a TradingCalendar for the given market.
func NewTradingCalendar(market domain.Market) *TradingCalendar {
	return &TradingCalendar{
		market: market,
	}
}

// IsTradingDay reports whether t falls on a trading day (Monday-Friday).
func (tc *TradingCalendar) IsTradingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextTradingDay returns the first trading day strictly after t.
func (tc *TradingCalendar) NextTradingDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for !tc.IsTradingDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// TradingDays returns every trading day in [start, end), one entry per
// calendar day that trades.
func (tc *TradingCalendar) TradingDays(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if tc.IsTradingDay(d) {
			days = append(days, d)
		}
	}
	return days
}
