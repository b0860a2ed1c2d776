package adapters

import (
	"context"

	"barberia/internal/core"
	"barberia/internal/services"
	"barberia/internal/storage"
)

// SQLiteAdapter adapts SQLiteRepository and TransactionService to the
// store.Store surface. Transaction writes route through the service so every
// local write publishes its sync message; reads and catalog operations go
// straight to the repository.
type SQLiteAdapter struct {
	storage *storage.SQLiteRepository
	service *services.TransactionService
}

func NewSQLiteAdapter(storage *storage.SQLiteRepository, service *services.TransactionService) *SQLiteAdapter {
	return &SQLiteAdapter{
		storage: storage,
		service: service,
	}
}

// Add implements store.TransactionWriter
func (a *SQLiteAdapter) Add(ctx context.Context, tx core.Transaction) (string, error) {
	return a.service.Add(ctx, tx)
}

// Delete implements store.TransactionDeleter
func (a *SQLiteAdapter) Delete(ctx context.Context, id string) error {
	return a.service.Delete(ctx, id)
}

// Clear implements store.TransactionDeleter
func (a *SQLiteAdapter) Clear(ctx context.Context) error {
	_, err := a.service.Clear(ctx)
	return err
}

// ListRaw implements store.RawLister
func (a *SQLiteAdapter) ListRaw(ctx context.Context) ([]core.RawRecord, error) {
	return a.storage.ListRaw(ctx)
}

// ListServices implements store.CatalogReader
func (a *SQLiteAdapter) ListServices(ctx context.Context) ([]core.Service, error) {
	return a.storage.ListServices(ctx)
}

// ListCategories implements store.CatalogReader
func (a *SQLiteAdapter) ListCategories(ctx context.Context) ([]core.ExpenseCategory, error) {
	return a.storage.ListCategories(ctx)
}

// SaveService implements store.CatalogWriter
func (a *SQLiteAdapter) SaveService(ctx context.Context, s core.Service) (string, error) {
	return a.storage.SaveService(ctx, s)
}

// SaveCategory implements store.CatalogWriter
func (a *SQLiteAdapter) SaveCategory(ctx context.Context, c core.ExpenseCategory) (string, error) {
	return a.storage.SaveCategory(ctx, c)
}

// DeleteService implements store.CatalogWriter
func (a *SQLiteAdapter) DeleteService(ctx context.Context, id string) error {
	return a.storage.DeleteService(ctx, id)
}

// DeleteCategory implements store.CatalogWriter
func (a *SQLiteAdapter) DeleteCategory(ctx context.Context, id string) error {
	return a.storage.DeleteCategory(ctx, id)
}
