// Package store defines the ports the aggregation core consumes transaction
// and catalog data through. Adapters live in the subpackages (memory,
// firestore) and in internal/storage for SQLite.
package store

import (
	"context"
	"errors"

	"barberia/internal/core"
)

// ErrNotFound marks a lookup or delete whose id matched nothing. Backends
// wrap it so callers can tell a missing record from a failing store.
var ErrNotFound = errors.New("not found")

// Ports for outbound adapters.
type (
	// RawLister yields the unordered raw snapshot for one business. Records
	// come back in whatever external shape the backend holds; callers run
	// them through core.Normalize before aggregating.
	RawLister interface {
		ListRaw(ctx context.Context) ([]core.RawRecord, error)
	}

	// TransactionWriter persists one canonical transaction and returns the
	// id the backend assigned (or kept).
	TransactionWriter interface {
		Add(ctx context.Context, tx core.Transaction) (string, error)
	}

	// TransactionDeleter removes transactions. Clear drops every
	// transaction of the business; there is no undo.
	TransactionDeleter interface {
		Delete(ctx context.Context, id string) error
		Clear(ctx context.Context) error
	}

	// CatalogReader lists the configured services and expense categories.
	CatalogReader interface {
		ListServices(ctx context.Context) ([]core.Service, error)
		ListCategories(ctx context.Context) ([]core.ExpenseCategory, error)
	}

	// CatalogWriter maintains the catalogs.
	CatalogWriter interface {
		SaveService(ctx context.Context, s core.Service) (string, error)
		SaveCategory(ctx context.Context, c core.ExpenseCategory) (string, error)
		DeleteService(ctx context.Context, id string) error
		DeleteCategory(ctx context.Context, id string) error
	}
)

// Store is the full surface a backend exposes to the HTTP layer.
type Store interface {
	RawLister
	TransactionWriter
	TransactionDeleter
	CatalogReader
	CatalogWriter
}
