package main

import (
	"context"
	"net/http"
	"time"

	"kunaclient/internal/adapters/config"
	"kunaclient/internal/adapters/errors/noop"
	"kunaclient/internal/adapters/errors/sentry"
	"kunaclient/pkg/errors"
	"kunaclient/pkg/kuna"
	"kunaclient/pkg/logger"
	"kunaclient/pkg/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	client := kuna.New(kuna.Config{
		AccessKey:  cfg.Kuna.AccessKey,
		SecretKey:  cfg.Kuna.SecretKey,
		BaseURL:    cfg.Kuna.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Kuna.Timeout},
		Limiter:    ratelimit.NewLimiter("kuna", cfg.Kuna.RequestsPerMinute),
		Logger:     log,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, cfg, client, log); err != nil {
		log.ErrorWithContext(ctx, err, map[string]string{"component": "cli"})
	}

	_ = errorTracker.Flush(ctx)
}

// run exercises the public endpoints and, when credentials are
// configured, the private account endpoints.
func run(ctx context.Context, cfg *config.Config, client *kuna.Client, log *logger.Logger) error {
	serverTime, err := client.GetServerTime(ctx)
	if err != nil {
		return err
	}
	log.Infof("Server time: %s", serverTime.Time())

	markets, err := client.GetMarkets(ctx)
	if err != nil {
		return err
	}
	log.Infof("Markets listed: %d", len(markets))

	if len(markets) > 0 {
		symbol := markets[0].ID

		tickers, err := client.GetTickers(ctx, symbol)
		if err != nil {
			return err
		}
		for _, t := range tickers {
			log.Infof("Ticker %s: last=%s bid=%s ask=%s", t.Symbol, t.Last, t.Bid, t.Ask)
		}

		book, err := client.GetOrderBook(ctx, symbol)
		if err != nil {
			return err
		}
		log.Infof("Order book %s: %d bids / %d asks", book.Symbol, len(book.Bids), len(book.Asks))
	}

	if !cfg.Kuna.HasCredentials() {
		log.Info("No API credentials configured, skipping account endpoints")
		return nil
	}

	info, err := client.GetAccountInfo(ctx)
	if err != nil {
		return err
	}
	log.Infof("Account: %s (2fa: %t)", info.Email, info.TwoFactor)

	wallets, err := client.GetAccountWallets(ctx)
	if err != nil {
		return err
	}
	for _, w := range wallets {
		if w.Total.IsZero() {
			continue
		}
		log.Infof("Wallet %s %s: total=%s available=%s", w.Type, w.Currency, w.Total, w.Available)
	}

	orders, err := client.GetAccountOrders(ctx, "")
	if err != nil {
		return err
	}
	log.Infof("Active orders: %d", len(orders))

	return nil
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled {
		return noop.New()
	}
	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Sentry init failed, falling back to no-op tracker: %v", err)
		return noop.New()
	}
	return tracker
}
