package main

import (
	"account_ledger/internal/config"
	"account_ledger/internal/repository/memory"
	"account_ledger/internal/script"
	"account_ledger/internal/service"
	"account_ledger/pkg/clock"
	"account_ledger/pkg/metrics"
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	appName = "account_ledger"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	scriptPath := flag.String("script", "", "path to YAML script of ledger operations to replay")
	serve := flag.Bool("serve", false, "keep serving metrics after the script finishes")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := setupLogger(cfg.LogLevel)
	logger.Info("Starting application",
		slog.String("name", appName),
		slog.String("time_zone", cfg.TimeZone))

	if err := run(cfg, *scriptPath, *serve, logger); err != nil {
		logger.Error("Application failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Application shutdown complete")
}

func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: lvl,
	}

	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func run(cfg *config.Config, scriptPath string, serve bool, logger *slog.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	metricsCollector := metrics.NewMetricsCollector(logger)
	ledgerService := service.NewLedgerService(
		memory.NewClientRepository(),
		memory.NewAccountRepository(),
		clock.NewSystem(loc),
		service.Settings{
			BranchCode:     cfg.BranchCode,
			DailyCap:       cfg.DailyCap,
			OverdraftLimit: cfg.Limit(),
		},
		service.Observers{service.NewLogObserver(logger), metricsCollector},
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsServer := metricsCollector.NewMetricsServer(cfg.MetricsAddr)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting metrics server", slog.String("addr", metricsServer.Addr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		defer func() {
			if !serve {
				stop()
			}
		}()
		if scriptPath == "" {
			return nil
		}
		return replay(gCtx, ledgerService, scriptPath, logger)
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return metricsServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func replay(ctx context.Context, ledgerService *service.LedgerService, path string, logger *slog.Logger) error {
	s, err := script.LoadFile(path)
	if err != nil {
		return err
	}

	result, err := script.NewReplayer(ledgerService, os.Stdout, logger).Run(ctx, s)
	if err != nil {
		return err
	}

	logger.Info("Script replayed",
		slog.Int("applied", result.Applied),
		slog.Int("rejected", result.Rejected))
	return nil
}
