// Package memory holds an in-process Store used for local development and
// tests. Catalogs are seeded with the default barbershop services when none
// are supplied.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"barberia/internal/core"
	"barberia/internal/store"
)

type Store struct {
	mu         sync.Mutex
	txs        []core.Transaction
	services   []core.Service
	categories []core.ExpenseCategory
}

// defaultServices mirrors the seed catalog the business started with.
func defaultServices() []core.Service {
	names := []struct {
		name  string
		price float64
	}{
		{"Cortes", 4000},
		{"Ceja hombre", 1000},
		{"Barba", 3000},
		{"Barba+Corte", 6000},
		{"Ceja de mujer", 2000},
		{"Limpieza facial", 3000},
		{"Ceja+Limpieza", 4000},
	}
	services := make([]core.Service, 0, len(names))
	for i, n := range names {
		services = append(services, core.Service{
			ID:     fmt.Sprintf("%d", i+1),
			Name:   n.name,
			Price:  n.price,
			Scope:  core.ScopeNegocio,
			Active: true,
		})
	}
	return services
}

func defaultCategories() []core.ExpenseCategory {
	names := []string{"Alquiler", "Productos", "Servicios públicos", "Otros"}
	categories := make([]core.ExpenseCategory, 0, len(names))
	for i, name := range names {
		categories = append(categories, core.ExpenseCategory{
			ID:     fmt.Sprintf("c%d", i+1),
			Name:   name,
			Scope:  core.ScopeNegocio,
			Active: true,
		})
	}
	return categories
}

func New(services []core.Service, categories []core.ExpenseCategory) *Store {
	if len(services) == 0 {
		services = defaultServices()
	}
	if len(categories) == 0 {
		categories = defaultCategories()
	}
	return &Store{services: services, categories: categories}
}

// ListRaw returns the snapshot in the remote store shape.
func (s *Store) ListRaw(_ context.Context) ([]core.RawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raws := make([]core.RawRecord, 0, len(s.txs))
	for _, tx := range s.txs {
		raws = append(raws, rawFromTransaction(tx))
	}
	return raws, nil
}

func (s *Store) Add(_ context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.OccurredAt.IsZero() {
		tx.OccurredAt = time.Now()
	}
	s.txs = append(s.txs, tx)
	return tx.ID, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tx := range s.txs {
		if tx.ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("transaction %s: %w", id, store.ErrNotFound)
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = nil
	return nil
}

func (s *Store) ListServices(_ context.Context) ([]core.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Service(nil), s.services...), nil
}

func (s *Store) ListCategories(_ context.Context) ([]core.ExpenseCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.ExpenseCategory(nil), s.categories...), nil
}

func (s *Store) SaveService(_ context.Context, svc core.Service) (string, error) {
	if err := svc.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	for i, existing := range s.services {
		if existing.ID == svc.ID {
			s.services[i] = svc
			return svc.ID, nil
		}
	}
	s.services = append(s.services, svc)
	return svc.ID, nil
}

func (s *Store) SaveCategory(_ context.Context, cat core.ExpenseCategory) (string, error) {
	if err := cat.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if cat.ID == "" {
		cat.ID = uuid.NewString()
	}
	for i, existing := range s.categories {
		if existing.ID == cat.ID {
			s.categories[i] = cat
			return cat.ID, nil
		}
	}
	s.categories = append(s.categories, cat)
	return cat.ID, nil
}

func (s *Store) DeleteService(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, svc := range s.services {
		if svc.ID == id {
			s.services = append(s.services[:i], s.services[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("service %s: %w", id, store.ErrNotFound)
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cat := range s.categories {
		if cat.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category %s: %w", id, store.ErrNotFound)
}

func rawFromTransaction(tx core.Transaction) core.RawRecord {
	amount := tx.Amount
	occurred := tx.OccurredAt
	raw := core.RawRecord{
		ID:          tx.ID,
		Type:        string(tx.Kind),
		Scope:       string(tx.Kind.Scope()),
		Amount:      &amount,
		Method:      string(tx.Method),
		Description: tx.Note,
		Date:        &occurred,
	}
	if tx.ServiceRef != nil {
		raw.ServiceID = tx.ServiceRef.ID
		raw.Servicio = tx.ServiceRef.Name
	}
	if tx.CategoryRef != nil {
		raw.CategoryID = tx.CategoryRef.ID
		raw.Categoria = tx.CategoryRef.Name
	}
	return raw
}
