package backend

import (
	"context"
	"fmt"
	"log/slog"

	"barberia/internal/adapters"
	"barberia/internal/amqp"
	"barberia/internal/services"
	"barberia/internal/storage"
	"barberia/internal/store/firestore"
	"barberia/internal/store/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case FirestoreBackend:
		return f.createFirestoreBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	sqliteRepo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	// AMQP is optional: without it, writes stay local until the worker's
	// pending-sync sweep picks them up.
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without sync", "error", err)
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	txService := services.NewTransactionService(sqliteRepo, amqpClient)
	adapter := adapters.NewSQLiteAdapter(sqliteRepo, txService)

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", amqpClient != nil)

	return &Result{
		Store:   adapter,
		Cleanup: txService.Close,
	}, nil
}

func (f *DefaultFactory) createFirestoreBackend(ctx context.Context, config Config) (*Result, error) {
	client, err := firestore.NewClient(ctx, config.FirestoreProjectID, config.FirestoreCredentials, config.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firestore client: %w", err)
	}

	f.logger.Info("Initialized Firestore backend",
		"project_id", config.FirestoreProjectID,
		"business_id", config.BusinessID)

	return &Result{
		Store:   client,
		Cleanup: client.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*Result, error) {
	st := memory.New(nil, nil)

	f.logger.Info("Initialized memory backend")

	return &Result{
		Store:   st,
		Cleanup: nil, // No cleanup needed for memory backend
	}, nil
}
