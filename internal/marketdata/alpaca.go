package marketdata

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"tradoverse/internal/domain"
	"tradoverse/internal/util"
)

// Compile-time interface check.
var _ Provider = (*AlpacaProvider)(nil)

// AlpacaProvider fetches daily bars from the Alpaca market-data API.
type AlpacaProvider struct {
	client     *marketdata.Client
	limiter    *util.RateLimiter
	maxRetries int
	log        *slog.Logger
}

// NewAlpacaProvider creates an AlpacaProvider with the given credentials.
// rateLimitPerMin caps request rate; maxRetries bounds per-request retries.
func NewAlpacaProvider(apiKey, apiSecret, dataURL string, rateLimitPerMin, maxRetries int) *AlpacaProvider {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}

	return &AlpacaProvider{
		client:     marketdata.NewClient(opts),
		limiter:    util.NewRateLimiter(rateLimitPerMin),
		maxRetries: maxRetries,
		log:        slog.Default().With("provider", "alpaca"),
	}
}

// GetBars fetches daily bars for the symbol, retrying transient failures
// with exponential backoff. Returns ErrNoData when the API has no bars for
// the range.
func (p *AlpacaProvider) GetBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var raw []marketdata.Bar
	err := util.Retry(ctx, p.maxRetries, 500*time.Millisecond, func() error {
		var reqErr error
		raw, reqErr = p.client.GetBars(symbol, marketdata.GetBarsRequest{
			TimeFrame: marketdata.OneDay,
			Start:     start,
			End:       end,
		})
		return reqErr
	})
	if err != nil {
		return nil, fmt.Errorf("fetching bars for %s: %w", symbol, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoData)
	}

	bars := make([]domain.Bar, 0, len(raw))
	for _, b := range raw {
		bars = append(bars, domain.Bar{
			Symbol:    symbol,
			Timestamp: b.Timestamp,
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    int64(b.Volume),
		})
	}
	return bars, nil
}
