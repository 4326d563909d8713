package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	apphttp "fintrack/internal/http"
	"fintrack/internal/insights"
	applog "fintrack/internal/log"
	"fintrack/internal/reconcile"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

func main() {
	// .env is for local development; missing file is fine.
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: "api"})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// AMQP is optional: without it, reconcile triggers are skipped and the
	// worker's periodic sweep keeps spent amounts converging.
	var publisher services.ReconcilePublisher
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("AMQP unavailable, reconcile triggers disabled", "error", err)
	} else {
		defer amqpClient.Close()
		publisher = amqpClient
	}

	engine := insights.NewEngine(repo, repo)
	reconciler := reconcile.NewReconciler(repo, repo, logger.WithComponent("reconciler").Logger)
	txService := services.NewTransactionService(repo, publisher)
	budgetService := services.NewBudgetService(repo, publisher)

	srv := apphttp.NewServer(apphttp.Options{
		Addr:         ":" + cfg.Port,
		Engine:       engine,
		Reconciler:   reconciler,
		Transactions: txService,
		Budgets:      budgetService,
		Store:        repo,
		CacheSize:    cfg.CacheSize,
		CacheTTL:     cfg.CacheTTL,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting fintrack server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
