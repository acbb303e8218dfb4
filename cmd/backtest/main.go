package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"tradoverse/internal/backtest"
	"tradoverse/internal/config"
	"tradoverse/internal/domain"
	"tradoverse/internal/marketdata"
	"tradoverse/internal/store"
	"tradoverse/internal/strategy"
	"tradoverse/internal/util"
)

const dateLayout = "2006-01-02"

func main() {
	symbolsFlag := flag.String("symbols", "", "comma-separated symbols, e.g. AAPL,MSFT")
	strategyFlag := flag.String("strategy", "momentum", "strategy: momentum, mean_reversion, trend_following")
	startFlag := flag.String("start", "", "start date (YYYY-MM-DD)")
	endFlag := flag.String("end", "", "end date (YYYY-MM-DD)")
	capitalFlag := flag.Float64("capital", 0, "initial capital (0 = config default)")
	paramsFlag := flag.String("params", "", "strategy params as key=value pairs, comma-separated")
	seedFlag := flag.Int64("seed", 0, "seed for synthetic data (0 = time-based)")
	syntheticFlag := flag.Bool("synthetic", false, "skip the data API and synthesize all series")
	jsonFlag := flag.Bool("json", false, "print the full result as JSON")
	flag.Parse()

	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfgPath := "config/tradoverse.yaml"
	if p := os.Getenv("TRADOVERSE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	util.SetDefault(util.NewLogger(cfg.Logging.Level))

	symbols := splitSymbols(*symbolsFlag)
	if len(symbols) == 0 {
		log.Fatal("at least one symbol is required (-symbols)")
	}
	start, end, err := parseRange(*startFlag, *endFlag)
	if err != nil {
		log.Fatalf("invalid date range: %v", err)
	}
	params, err := parseParams(*paramsFlag)
	if err != nil {
		log.Fatalf("invalid params: %v", err)
	}

	source := buildSource(cfg, *syntheticFlag)

	var opts []backtest.Option
	if *seedFlag != 0 {
		opts = append(opts, backtest.WithFallback(
			marketdata.NewSyntheticProvider(marketdata.WithSeed(*seedFlag))))
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("simulating"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)
	opts = append(opts, backtest.WithProgress(func(done, total int) {
		if bar.GetMax() != total {
			bar.ChangeMax(total)
		}
		_ = bar.Set(done)
	}))

	engine := backtest.NewEngine(source, cfg, opts...)

	result, err := engine.Run(context.Background(), backtest.Request{
		Symbols:        symbols,
		Strategy:       domain.StrategyKind(*strategyFlag),
		Start:          start,
		End:            end,
		InitialCapital: *capitalFlag,
		Params:         params,
	})
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatalf("backtest failed: %v", err)
	}

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatalf("failed to encode result: %v", err)
		}
		return
	}
	printSummary(result)
}

// buildSource wires the market-data path: Alpaca behind a local bar cache
// when credentials exist, nil (synthetic-only) otherwise.
func buildSource(cfg *config.Config, syntheticOnly bool) marketdata.Provider {
	if syntheticOnly || cfg.Alpaca.APIKey == "" || cfg.Alpaca.APISecret == "" {
		return nil
	}

	alpaca := marketdata.NewAlpacaProvider(
		cfg.Alpaca.APIKey,
		cfg.Alpaca.APISecret,
		cfg.Alpaca.DataURL,
		cfg.Fetch.RateLimitPerMin,
		cfg.Fetch.MaxRetries,
	)

	cache, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		// Cache is an optimization; run uncached rather than failing.
		log.Printf("bar cache unavailable (%v), fetching uncached", err)
		return alpaca
	}
	return marketdata.NewCachedProvider(alpaca, cache)
}

func splitSymbols(s string) []string {
	var out []string
	for _, sym := range strings.Split(s, ",") {
		if sym = strings.ToUpper(strings.TrimSpace(sym)); sym != "" {
			out = append(out, sym)
		}
	}
	return out
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	// Default window: the last year.
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(-1, 0, 0)

	var err error
	if startStr != "" {
		if start, err = time.Parse(dateLayout, startStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if endStr != "" {
		if end, err = time.Parse(dateLayout, endStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}

func parseParams(s string) (strategy.Params, error) {
	if s == "" {
		return nil, nil
	}
	params := make(strategy.Params)
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", key, err)
		}
		params[key] = v
	}
	return params, nil
}

func printSummary(r *backtest.Result) {
	fmt.Printf("Total return:   %.2f%%\n", r.TotalReturn)
	fmt.Printf("Sharpe ratio:   %.2f\n", r.SharpeRatio)
	fmt.Printf("Max drawdown:   %.2f%%\n", r.MaxDrawdown)
	fmt.Printf("Win rate:       %.2f%%\n", r.WinRate)
	fmt.Printf("Profit factor:  %.2f\n", r.ProfitFactor)
	fmt.Printf("Trades:         %d (%d won / %d lost)\n", r.TotalTrades, r.WinningTrades, r.LosingTrades)
	fmt.Printf("Avg win/loss:   %.2f / %.2f\n", r.AvgWin, r.AvgLoss)

	if len(r.Trades) > 0 {
		fmt.Println("\nTrades:")
		for _, t := range r.Trades {
			fmt.Printf("  %-6s %-5s qty %.4f  %.2f -> %.2f  pnl %.2f (%.2f%%)\n",
				t.Symbol, t.Side, t.Quantity, t.EntryPrice, t.ExitPrice, t.PnL, t.PnLPercent)
		}
	}
}
