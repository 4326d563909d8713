package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	applog "fintrack/internal/log"
	"fintrack/internal/reconcile"
	"fintrack/internal/storage"
	"fintrack/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: "worker"})
	applog.SetDefault(logger)

	logger.Info("Starting fintrack-worker")

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

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	reconciler := reconcile.NewReconciler(repo, repo, logger.WithComponent("reconciler").Logger)
	reconcileWorker := worker.NewReconcileWorker(reconciler, repo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catch up on anything missed while the worker was down.
	if err := reconcileWorker.SweepAll(ctx); err != nil {
		logger.Error("Startup sweep failed", "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := amqpClient.ConsumeReconcile(gctx, func(msg *amqp.ReconcileMessage) error {
			return reconcileWorker.HandleMessage(gctx, msg)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	// Periodic sweep covers triggers lost to broker or worker downtime.
	g.Go(func() error {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(fmt.Sprintf("@every %s", cfg.SweepInterval), func() {
			if err := reconcileWorker.SweepAll(gctx); err != nil {
				logger.Error("Periodic sweep failed", "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("schedule sweep: %w", err)
		}

		scheduler.Start()
		<-gctx.Done()

		stopCtx := scheduler.Stop()
		select {
		case <-stopCtx.Done():
		case <-time.After(30 * time.Second):
			logger.Warn("Sweep shutdown timeout reached")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
