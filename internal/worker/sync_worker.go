// Package worker replays local SQLite writes to the remote Firestore store.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"barberia/internal/amqp"
	"barberia/internal/core"
	"barberia/internal/storage"
	"barberia/internal/store"
)

// RemoteStore is the slice of the remote backend the worker needs: idempotent
// writes and deletes.
type RemoteStore interface {
	store.TransactionWriter
	Delete(ctx context.Context, id string) error
}

// SyncWorker handles synchronization of transactions from SQLite to the
// remote store.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	remote    RemoteStore
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, remote RemoteStore, batchSize int) *SyncWorker {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &SyncWorker{
		storage:   storage,
		remote:    remote,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single transaction sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "transaction_id", msg.ID)

	tx, err := w.storage.Get(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	return w.pushTransaction(ctx, tx)
}

// HandleDeleteMessage processes a single transaction delete message from AMQP.
func (w *SyncWorker) HandleDeleteMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing delete message", "transaction_id", msg.ID)

	if w.remote == nil {
		slog.WarnContext(ctx, "No remote store configured, skipping delete", "transaction_id", msg.ID)
		return nil
	}

	if err := w.remote.Delete(ctx, msg.ID); err != nil {
		// A replayed delete may find the document already gone.
		if errors.Is(err, store.ErrNotFound) {
			slog.InfoContext(ctx, "Transaction already absent from remote store", "transaction_id", msg.ID)
			return nil
		}
		return fmt.Errorf("delete transaction from remote store: %w", err)
	}

	slog.InfoContext(ctx, "Deleted transaction from remote store", "transaction_id", msg.ID)
	return nil
}

// pushTransaction writes the transaction to the remote store under its local
// id, then marks it synced. Re-pushing the same id overwrites the remote
// copy, so retries are safe.
func (w *SyncWorker) pushTransaction(ctx context.Context, tx core.Transaction) error {
	if w.remote == nil {
		slog.WarnContext(ctx, "No remote store configured, skipping sync", "transaction_id", tx.ID)
		return nil
	}

	if _, err := w.remote.Add(ctx, tx); err != nil {
		return fmt.Errorf("push transaction to remote store: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, tx.ID); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}

	slog.InfoContext(ctx, "Transaction synced to remote store",
		"transaction_id", tx.ID,
		"kind", tx.Kind,
		"amount", tx.Amount)
	return nil
}

// ProcessPendingTransactions pushes any transactions that haven't been synced
// yet. This is a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPendingTransactions(ctx context.Context) error {
	pending, err := w.storage.ListPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending transactions: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	for _, tx := range pending {
		if err := w.pushTransaction(ctx, tx); err != nil {
			slog.ErrorContext(ctx, "Failed to sync pending transaction",
				"transaction_id", tx.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck pushes pending transactions at worker startup, recovering
// from missed AMQP messages or worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.ListPendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("list pending transactions for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending transactions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending transactions on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, tx := range pending {
		if err := w.pushTransaction(ctx, tx); err != nil {
			slog.ErrorContext(ctx, "Startup sync failed for transaction",
				"transaction_id", tx.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync check completed",
		"synced", successCount,
		"errors", errorCount)

	if errorCount > 0 {
		return fmt.Errorf("startup sync completed with %d errors out of %d transactions",
			errorCount, len(pending))
	}
	return nil
}
