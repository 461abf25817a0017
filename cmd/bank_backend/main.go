package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/bank_api/internal/core/services"
	"github.com/SscSPs/bank_api/internal/middleware"
	"github.com/SscSPs/bank_api/internal/platform/config"
	"github.com/SscSPs/bank_api/internal/utils"
)

// @title Bank API
// @version 1.0
// @description Toy ledger: registration, deposits, transfers and loans with a BANK fee account.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// run owns every resource it opens; its deferred closes have all
	// executed by the time it returns, so exiting here leaks nothing.
	if err := run(ctx, stop, cfg, logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

// storeOpener is swapped in tests.
var storeOpener = openStore

func run(ctx context.Context, stop context.CancelFunc, cfg *config.Config, logger *slog.Logger) error {
	repos, closeStore, err := storeOpener(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open %s account store: %w", cfg.StoreDriver, err)
	}
	defer closeStore()

	serviceContainer := services.NewServiceContainer(cfg, repos)

	if cfg.BankPassword != "" {
		if err := services.EnsureBankAccount(ctx, serviceContainer.Credential, cfg.BankPassword, logger); err != nil {
			return fmt.Errorf("failed to bootstrap BANK account: %w", err)
		}
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("failed to configure rate limiter: %w", err)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	r, err := newRouter(cfg, logger, serviceContainer, rateLimiter, posthogClient)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
		close(serveErr)
	}()

	<-ctx.Done()
	logger.Info("Shutting down server", slog.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shut down", slog.String("error", err.Error()))
	}

	if err := <-serveErr; err != nil {
		return fmt.Errorf("server failed to run: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
