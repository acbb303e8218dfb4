// Package marketdata supplies the historical price series a backtest
// consumes. The real source is the Alpaca market-data API; a synthetic
// random-walk generator stands in whenever the real source is unavailable or
// errors, so the engine always has data to simulate.
package marketdata

import (
	"context"
	"errors"
	"time"

	"tradoverse/internal/domain"
)

// ErrNoData indicates a provider had no bars for the requested symbol/range.
var ErrNoData = errors.New("no bars for symbol in range")

// Provider returns daily OHLCV bars for one symbol over [start, end].
// Implementations may fail; callers that cannot tolerate failure wrap the
// provider with synthetic fallback (see Fetch).
type Provider interface {
	GetBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)
}
