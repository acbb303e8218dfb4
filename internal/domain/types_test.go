package domain

import (
	"testing"
	"time"
)

func TestZeroValues(t *testing.T) {
	// Verify Bar can be instantiated with zero values.
	bar := Bar{}
	if bar.Symbol != "" {
		t.Error("expected empty Symbol for zero-value Bar")
	}
	if !bar.Timestamp.IsZero() {
		t.Error("expected zero Timestamp for zero-value Bar")
	}
	if bar.Open != 0 || bar.High != 0 || bar.Low != 0 || bar.Close != 0 {
		t.Error("expected zero OHLC values for zero-value Bar")
	}
	if bar.Volume != 0 {
		t.Error("expected zero Volume for zero-value Bar")
	}

	pos := Position{}
	if pos.Symbol != "" || pos.Quantity != 0 || pos.EntryPrice != 0 {
		t.Error("expected zero fields for zero-value Position")
	}
	if pos.Side != "" {
		t.Error("expected empty Side for zero-value Position")
	}

	trade := Trade{}
	if trade.PnL != 0 || trade.PnLPercent != 0 {
		t.Error("expected zero PnL fields for zero-value Trade")
	}
}

func TestEnumValues(t *testing.T) {
	if SignalBuy != "buy" || SignalSell != "sell" || SignalHold != "hold" {
		t.Error("SignalType constants have unexpected values")
	}
	if StrategyMomentum != "momentum" {
		t.Errorf("StrategyMomentum = %q, want %q", StrategyMomentum, "momentum")
	}
	if StrategyMeanReversion != "mean_reversion" || StrategyTrendFollowing != "trend_following" {
		t.Error("StrategyKind constants have unexpected values")
	}
	if SideLong != "long" || SideShort != "short" {
		t.Error("Side constants have unexpected values")
	}
	if MarketUS != "us" {
		t.Errorf("MarketUS = %q, want %q", MarketUS, "us")
	}
}

func TestPositionHelpers(t *testing.T) {
	pos := Position{
		Symbol:     "AAPL",
		Quantity:   10,
		EntryPrice: 100,
		EntryDate:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Side:       SideLong,
	}
	if got := pos.MarketValue(110); got != 1100 {
		t.Errorf("MarketValue(110) = %v, want 1100", got)
	}
	if got := pos.CostBasis(); got != 1000 {
		t.Errorf("CostBasis() = %v, want 1000", got)
	}
}
