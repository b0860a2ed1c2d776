package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"barberia/internal/amqp"
	"barberia/internal/cli"
	applog "barberia/internal/log"
	"barberia/internal/store/firestore"
	"barberia/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)

	logger.Info("Starting barberia-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	// SQLite holds the local writes the worker replays
	sqliteRepo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer sqliteRepo.Close()

	// Firestore client for sync operations (optional)
	var remote *firestore.Client
	if cfg.FirestoreProjectID != "" {
		var err error
		remote, err = firestore.NewClient(context.Background(), cfg.FirestoreProjectID, cfg.FirestoreCredentials, cfg.BusinessID)
		if err != nil {
			logger.Error("Failed to initialize Firestore client", "error", err)
			os.Exit(1)
		}
		defer remote.Close()
		logger.Info("Firestore client initialized",
			"project_id", cfg.FirestoreProjectID,
			"business_id", cfg.BusinessID)
	} else {
		logger.Info("Firestore disabled - no FIRESTORE_PROJECT_ID provided")
	}

	// AMQP client for consuming messages
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if remote == nil {
		logger.Info("No remote store available, worker idle until shutdown")
		waitForSignal(logger)
		return
	}

	syncWorker := worker.NewSyncWorker(sqliteRepo, remote, cfg.SyncBatchSize)

	// On startup, process any pending transactions that might have been missed
	logger.Info("Performing startup sync check...")
	if err := syncWorker.StartupSyncCheck(ctx); err != nil {
		logger.Error("Failed startup sync check", "error", err)
		// Don't exit - continue with normal operation
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeWithReconnect(gctx,
			func(msg *amqp.TransactionSyncMessage) error {
				return syncWorker.HandleSyncMessage(gctx, msg)
			},
			func(msg *amqp.TransactionSyncMessage) error {
				return syncWorker.HandleDeleteMessage(gctx, msg)
			})
	})

	// Periodic sweep for any missed messages
	g.Go(func() error {
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := syncWorker.ProcessPendingTransactions(gctx); err != nil {
					logger.Error("Periodic sync failed", "error", err)
				}
			}
		}
	})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}

func waitForSignal(logger *applog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutdown signal received", "signal", sig.String())
}
