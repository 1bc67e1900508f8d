package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/currency_converter_app/internal/clients/freecurrency"
	"github.com/SscSPs/currency_converter_app/internal/core/services"
	"github.com/SscSPs/currency_converter_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/currency_converter_app/pkg/config"
	"github.com/SscSPs/currency_converter_app/pkg/database"
)

// cca_sync runs the provider sync operations once and exits. It is meant for
// cron-style scheduling and manual runs.
func main() {
	syncCurrencies := flag.Bool("currencies", false, "sync the upstream currency list")
	updateRates := flag.Bool("rates", false, "fetch and store the latest rates")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if !*syncCurrencies && !*updateRates {
		logger.Error("Nothing to do: pass -currencies and/or -rates")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	repos := pgsql.NewRepositoryProvider(dbPool)
	provider := freecurrency.New(cfg.FreecurrencyAPIURL, cfg.FreecurrencyAPIKey, cfg.FreecurrencyTimeout)
	serviceContainer := services.NewServiceContainer(repos, provider, logger)

	exitCode := 0

	if *syncCurrencies {
		count, err := serviceContainer.RateSync.SyncCurrencies(ctx)
		if err != nil {
			logger.Error("Currency sync failed", slog.String("error", err.Error()))
			exitCode = 1
		} else {
			logger.Info("Currency sync completed", slog.Int("count", count))
		}
	}

	if *updateRates {
		count, err := serviceContainer.RateSync.UpdateRates(ctx)
		if err != nil {
			logger.Error("Rate update failed", slog.String("error", err.Error()))
			exitCode = 1
		} else {
			logger.Info("Rate update completed", slog.Int("count", count))
		}
	}

	os.Exit(exitCode)
}
