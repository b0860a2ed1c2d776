package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"barberia/internal/core"
	"barberia/internal/store"
)

func TestStore_AddListRoundTrip(t *testing.T) {
	s := New(nil, nil)
	ctx := context.Background()

	occurred := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	id, err := s.Add(ctx, core.Transaction{
		Kind:       core.IncomeBusiness,
		Amount:     4000,
		Method:     core.Cash,
		ServiceRef: &core.CatalogRef{ID: "1", Name: "Cortes"},
		OccurredAt: occurred,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if id == "" {
		t.Fatal("Add returned empty id")
	}

	raws, err := s.ListRaw(ctx)
	if err != nil {
		t.Fatalf("ListRaw: %v", err)
	}
	if len(raws) != 1 {
		t.Fatalf("expected 1 raw record, got %d", len(raws))
	}

	tx := core.Normalize(raws[0], nil)
	if tx.Kind != core.IncomeBusiness || tx.Amount != 4000 || tx.Method != core.Cash {
		t.Fatalf("normalized record = %+v", tx)
	}
	if !tx.OccurredAt.Equal(occurred) {
		t.Fatalf("occurredAt = %v, want %v", tx.OccurredAt, occurred)
	}
	if tx.ServiceRef == nil || tx.ServiceRef.Name != "Cortes" {
		t.Fatalf("serviceRef = %+v", tx.ServiceRef)
	}
}

func TestStore_AddRejectsInvalid(t *testing.T) {
	s := New(nil, nil)
	if _, err := s.Add(context.Background(), core.Transaction{Kind: "ajuste", Amount: 1, Method: core.Cash}); err == nil {
		t.Fatal("expected invalid kind to be rejected")
	}
}

func TestStore_DeleteAndClear(t *testing.T) {
	s := New(nil, nil)
	ctx := context.Background()

	id1, _ := s.Add(ctx, core.Transaction{Kind: core.IncomeBusiness, Amount: 1000, Method: core.Cash, OccurredAt: time.Now()})
	s.Add(ctx, core.Transaction{Kind: core.ExpenseBusiness, Amount: 500, Method: core.SinpeMobile, OccurredAt: time.Now()})

	if err := s.Delete(ctx, id1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Delete of unknown id = %v, want store.ErrNotFound", err)
	}

	raws, _ := s.ListRaw(ctx)
	if len(raws) != 1 {
		t.Fatalf("expected 1 record after delete, got %d", len(raws))
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	raws, _ = s.ListRaw(ctx)
	if len(raws) != 0 {
		t.Fatalf("expected empty after clear, got %d", len(raws))
	}
}

func TestStore_CatalogSeedsAndCRUD(t *testing.T) {
	s := New(nil, nil)
	ctx := context.Background()

	services, err := s.ListServices(ctx)
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if len(services) == 0 {
		t.Fatal("expected seeded services")
	}
	if services[0].Name != "Cortes" || services[0].Price != 4000 {
		t.Fatalf("first seeded service = %+v", services[0])
	}

	id, err := s.SaveService(ctx, core.Service{Name: "Tinte", Price: 8000, Scope: core.ScopeNegocio, Active: true})
	if err != nil {
		t.Fatalf("SaveService: %v", err)
	}

	// Update in place under the same id.
	if _, err := s.SaveService(ctx, core.Service{ID: id, Name: "Tinte", Price: 9000, Scope: core.ScopeNegocio, Active: true}); err != nil {
		t.Fatalf("SaveService update: %v", err)
	}
	services, _ = s.ListServices(ctx)
	var found *core.Service
	for i := range services {
		if services[i].ID == id {
			found = &services[i]
		}
	}
	if found == nil || found.Price != 9000 {
		t.Fatalf("updated service = %+v", found)
	}

	if err := s.DeleteService(ctx, id); err != nil {
		t.Fatalf("DeleteService: %v", err)
	}

	categories, err := s.ListCategories(ctx)
	if err != nil || len(categories) == 0 {
		t.Fatalf("ListCategories = %v, %v", categories, err)
	}
	if _, err := s.SaveCategory(ctx, core.ExpenseCategory{Name: ""}); err == nil {
		t.Fatal("expected empty category name to be rejected")
	}
}
