package services

import (
	"context"
	"fmt"
	"log/slog"

	"barberia/internal/amqp"
	"barberia/internal/core"
	"barberia/internal/storage"
)

// TransactionService orchestrates transaction writes across SQLite and AMQP.
// Writes land locally first; remote sync is asynchronous and must never fail
// the request.
type TransactionService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewTransactionService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *TransactionService {
	return &TransactionService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// Add saves a transaction locally and publishes a sync message.
func (s *TransactionService) Add(ctx context.Context, tx core.Transaction) (string, error) {
	id, err := s.storage.Add(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publishSyncMessage(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"transaction_id", id, "error", err)
		// Don't fail the request - transaction is saved locally
	}

	return id, nil
}

// Delete soft deletes a transaction locally and publishes a delete message.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.storage.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if err := s.publishDeleteMessage(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			"transaction_id", id, "error", err)
	}

	return nil
}

// Clear soft deletes every transaction locally and publishes one delete
// message per cleared record.
func (s *TransactionService) Clear(ctx context.Context) (int, error) {
	ids, err := s.storage.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear transactions: %w", err)
	}

	for _, id := range ids {
		if err := s.publishDeleteMessage(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to publish delete message",
				"transaction_id", id, "error", err)
		}
	}

	return len(ids), nil
}

func (s *TransactionService) publishSyncMessage(ctx context.Context, id string) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}

	return s.amqpClient.PublishTransactionSync(ctx, id)
}

func (s *TransactionService) publishDeleteMessage(ctx context.Context, id string) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping delete message")
		return nil
	}

	return s.amqpClient.PublishTransactionDelete(ctx, id)
}

// Close closes both storage and AMQP connections
func (s *TransactionService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close transaction service: %v", errs)
	}

	return nil
}
