// Package store defines storage for historical OHLCV bar data. Stores hold
// the *input* series a backtest consumes; backtest results themselves stay
// in memory.
package store

import (
	"context"
	"time"

	"tradoverse/internal/domain"
)

// BarStore persists and retrieves OHLCV bar data.
type BarStore interface {
	// WriteBars persists a batch of bars to storage. Writing the same bar
	// twice is an upsert, keyed by (symbol, timestamp).
	WriteBars(ctx context.Context, bars []domain.Bar) error

	// ReadBars returns bars for the given symbol within [start, end],
	// ordered by timestamp.
	ReadBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)

	// ListSymbols returns all distinct symbols available in the store.
	ListSymbols(ctx context.Context) ([]string, error)
}
