package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"StockWatcher/internal/collector"
	"StockWatcher/internal/config"
	"StockWatcher/internal/logger"
	"StockWatcher/internal/metrics"
	"StockWatcher/internal/notifier"
	"StockWatcher/internal/runner"
	"StockWatcher/internal/scheduler"
	"StockWatcher/internal/server"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfgPath).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	lg := logger.Init("stockwatcher", cfg.Log.Level, cfg.Log.Pretty)
	lg.Info().Msg("StockWatcher starting")

	// Data source
	var fetcher collector.Fetcher
	switch {
	case cfg.DataSource.Mock:
		fetcher = &collector.MockFetcher{Price: 150}
	case cfg.DataSource.BaseURL != "":
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	lg.Info().Str("source", fetcher.Name()).Msg("data source selected")

	m := metrics.NewMetrics()
	col := collector.NewCollector(fetcher, cfg.Params(), lg)
	col.Observer = m

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TelegramEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, lg)
		sched := scheduler.NewScheduler(ctx, runner.New(col, m, lg), runner.New(col, m, lg), tn, lg)
		sched.DefaultSymbol = cfg.DataSource.Symbol
		sched.DefaultStart = cfg.DefaultStart()
		sched.LookbackDays = cfg.Digest.LookbackDays
		if cfg.Digest.Cron != "" {
			if err := sched.RegisterDigest(cfg.Digest.Cron, cfg.Digest.Symbols); err != nil {
				lg.Fatal().Err(err).Msg("register digest")
			}
		}
		sched.Start()
		defer sched.Stop()

		go tn.StartPolling(ctx, sched.HandleCommand)
		lg.Info().Msg("telegram polling started")

		if os.Getenv("RUN_ON_START") == "true" {
			lg.Info().Msg("RUN_ON_START enabled, sending digest now")
			go sched.RunDigestNow(cfg.Digest.Symbols)
		}
	}

	srv := server.New(server.Config{
		Addr:          cfg.Server.Addr,
		DefaultSymbol: cfg.DataSource.Symbol,
		DefaultStart:  cfg.DefaultStart(),
	}, runner.New(col, m, lg), m, lg)

	if err := srv.ListenAndServe(ctx); err != nil {
		lg.Error().Err(err).Msg("http server")
		stop()
	}
	lg.Info().Msg("StockWatcher stopped")
}
