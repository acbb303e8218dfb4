package marketdata

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tradoverse/internal/domain"
)

// Fetch acquires bars for every symbol concurrently, capped at maxWorkers
// in-flight fetches. A failed or empty fetch for one symbol falls back to
// the synthetic generator for that symbol only; it never aborts the run.
// When source is nil every symbol is synthesized.
func Fetch(
	ctx context.Context,
	source Provider,
	fallback *SyntheticProvider,
	symbols []string,
	start, end time.Time,
	maxWorkers int,
) map[string][]domain.Bar {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	log := slog.Default().With("component", "marketdata")

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		sem    = make(chan struct{}, maxWorkers)
		series = make(map[string][]domain.Bar, len(symbols))
	)

	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			bars := fetchOne(ctx, source, fallback, symbol, start, end, log)

			mu.Lock()
			series[symbol] = bars
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()

	return series
}

func fetchOne(
	ctx context.Context,
	source Provider,
	fallback *SyntheticProvider,
	symbol string,
	start, end time.Time,
	log *slog.Logger,
) []domain.Bar {
	if source != nil {
		bars, err := source.GetBars(ctx, symbol, start, end)
		if err == nil && len(bars) > 0 {
			return bars
		}
		if err != nil {
			log.Warn("data acquisition failed, substituting synthetic series",
				"symbol", symbol, "error", err)
		} else {
			log.Warn("source returned no bars, substituting synthetic series",
				"symbol", symbol)
		}
	}

	bars, _ := fallback.GetBars(ctx, symbol, start, end) // never fails
	return bars
}
