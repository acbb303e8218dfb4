package marketdata

import (
	"context"
	"log/slog"
	"time"

	"tradoverse/internal/domain"
	"tradoverse/internal/store"
)

// Compile-time interface check.
var _ Provider = (*CachedProvider)(nil)

// CachedProvider reads bars from a local BarStore before going to the
// wrapped source, and backfills the store after a successful fetch. Cache
// write failures are logged, never surfaced: the bars are already in hand.
type CachedProvider struct {
	source Provider
	bars   store.BarStore
	log    *slog.Logger
}

// NewCachedProvider wraps source with a read-through cache over bars.
func NewCachedProvider(source Provider, bars store.BarStore) *CachedProvider {
	return &CachedProvider{
		source: source,
		bars:   bars,
		log:    slog.Default().With("provider", "cached"),
	}
}

// GetBars serves from the store when it has any bars for the range,
// otherwise fetches from the source and backfills.
func (p *CachedProvider) GetBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error) {
	cached, err := p.bars.ReadBars(ctx, symbol, start, end)
	if err == nil && len(cached) > 0 {
		return cached, nil
	}
	if err != nil {
		p.log.Warn("cache read failed, falling through to source", "symbol", symbol, "error", err)
	}

	fetched, err := p.source.GetBars(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	if err := p.bars.WriteBars(ctx, fetched); err != nil {
		p.log.Warn("cache backfill failed", "symbol", symbol, "error", err)
	}
	return fetched, nil
}
