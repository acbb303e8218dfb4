package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"tradoverse/internal/config"
	"tradoverse/internal/marketdata"
	"tradoverse/internal/store"
	"tradoverse/internal/util"
)

const dateLayout = "2006-01-02"

// fetch downloads daily bars for a symbol list into local storage so later
// backtests can run against cached data.
func main() {
	symbolsFlag := flag.String("symbols", "", "comma-separated symbols, e.g. AAPL,MSFT")
	startFlag := flag.String("start", "", "start date (YYYY-MM-DD), default one year ago")
	endFlag := flag.String("end", "", "end date (YYYY-MM-DD), default today")
	backendFlag := flag.String("store", "sqlite", "storage backend: sqlite or parquet")
	syntheticFlag := flag.Bool("synthetic", false, "generate synthetic bars instead of calling the data API")
	flag.Parse()

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

	var symbols []string
	for _, s := range strings.Split(*symbolsFlag, ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		log.Fatal("at least one symbol is required (-symbols)")
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(-1, 0, 0)
	if *startFlag != "" {
		if start, err = time.Parse(dateLayout, *startFlag); err != nil {
			log.Fatalf("invalid -start: %v", err)
		}
	}
	if *endFlag != "" {
		if end, err = time.Parse(dateLayout, *endFlag); err != nil {
			log.Fatalf("invalid -end: %v", err)
		}
	}

	bars, err := openStore(cfg, *backendFlag)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}

	var source marketdata.Provider
	if !*syntheticFlag && cfg.Alpaca.APIKey != "" && cfg.Alpaca.APISecret != "" {
		source = marketdata.NewAlpacaProvider(
			cfg.Alpaca.APIKey,
			cfg.Alpaca.APISecret,
			cfg.Alpaca.DataURL,
			cfg.Fetch.RateLimitPerMin,
			cfg.Fetch.MaxRetries,
		)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	series := marketdata.Fetch(ctx, source, marketdata.NewSyntheticProvider(),
		symbols, start, end, cfg.Fetch.MaxWorkers)

	bar := progressbar.NewOptions(len(symbols),
		progressbar.OptionSetDescription("writing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	var written int
	for _, symbol := range symbols {
		if err := bars.WriteBars(ctx, series[symbol]); err != nil {
			log.Printf("write failed for %s: %v", symbol, err)
		} else {
			written += len(series[symbol])
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	log.Printf("stored %d bars for %d symbols", written, len(symbols))
}

func openStore(cfg *config.Config, backend string) (store.BarStore, error) {
	if backend == "parquet" {
		return store.NewParquetStore(cfg.Storage.DataDir), nil
	}
	return store.NewSQLiteStore(cfg.Storage.SQLitePath)
}
