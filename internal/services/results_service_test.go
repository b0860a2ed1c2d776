package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"barberia/internal/core"
)

type fakeLister struct {
	raws []core.RawRecord
	err  error
}

func (f *fakeLister) ListRaw(ctx context.Context) ([]core.RawRecord, error) {
	return f.raws, f.err
}

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func sampleRaws() []core.RawRecord {
	return []core.RawRecord{
		{
			ID:     "tx-1",
			Type:   "entrada",
			Amount: floatPtr(4000),
			Method: "efectivo",
			Date:   timePtr(time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)),
		},
		{
			ID:     "tx-2",
			Type:   "salida",
			Amount: floatPtr(1500),
			Method: "sinpe",
			Date:   timePtr(time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)),
		},
		{
			ID:     "tx-3",
			Type:   "personal-entrada",
			Amount: floatPtr(2000),
			Method: "efectivo",
			Date:   timePtr(time.Date(2025, 2, 10, 10, 0, 0, 0, time.UTC)),
		},
	}
}

func TestResultsService_Results_BusinessScope(t *testing.T) {
	svc := NewResultsService(&fakeLister{raws: sampleRaws()})

	view, err := svc.Results(context.Background(), core.ScopeBusiness)
	if err != nil {
		t.Fatalf("Results() error = %v", err)
	}

	if view.Scope != core.ScopeBusiness {
		t.Errorf("Scope = %v, want %v", view.Scope, core.ScopeBusiness)
	}
	if view.Totals.Count != 2 {
		t.Errorf("Count = %d, want 2", view.Totals.Count)
	}
	if view.Totals.TotalIncome != 4000 {
		t.Errorf("TotalIncome = %v, want 4000", view.Totals.TotalIncome)
	}
	if view.Totals.TotalExpense != 1500 {
		t.Errorf("TotalExpense = %v, want 1500", view.Totals.TotalExpense)
	}
	if view.Totals.Balance != 2500 {
		t.Errorf("Balance = %v, want 2500", view.Totals.Balance)
	}
	if len(view.Periods) != 1 {
		t.Fatalf("len(Periods) = %d, want 1", len(view.Periods))
	}
	if got := len(view.Periods[0].Transactions); got != 2 {
		t.Errorf("period transactions = %d, want 2", got)
	}
}

func TestResultsService_Results_AllScopes(t *testing.T) {
	svc := NewResultsService(&fakeLister{raws: sampleRaws()})

	view, err := svc.Results(context.Background(), core.ScopeAll)
	if err != nil {
		t.Fatalf("Results() error = %v", err)
	}

	if view.Totals.Count != 3 {
		t.Errorf("Count = %d, want 3", view.Totals.Count)
	}
	if view.Totals.TotalIncome != 6000 {
		t.Errorf("TotalIncome = %v, want 6000", view.Totals.TotalIncome)
	}
	if len(view.Periods) != 2 {
		t.Fatalf("len(Periods) = %d, want 2", len(view.Periods))
	}
	// Newest period first
	if view.Periods[0].Month != 2 || view.Periods[1].Month != 1 {
		t.Errorf("period order = [%d, %d], want [2, 1]",
			view.Periods[0].Month, view.Periods[1].Month)
	}
}

func TestResultsService_Results_EmptyStore(t *testing.T) {
	svc := NewResultsService(&fakeLister{})

	view, err := svc.Results(context.Background(), core.ScopeBusiness)
	if err != nil {
		t.Fatalf("Results() error = %v", err)
	}

	if view.Totals != (core.Totals{}) {
		t.Errorf("Totals = %+v, want zero value", view.Totals)
	}
	if len(view.Periods) != 0 {
		t.Errorf("len(Periods) = %d, want 0", len(view.Periods))
	}
}

func TestResultsService_Results_ListError(t *testing.T) {
	svc := NewResultsService(&fakeLister{err: errors.New("store down")})

	if _, err := svc.Results(context.Background(), core.ScopeBusiness); err == nil {
		t.Error("Results() should propagate the store error")
	}
}

func TestResultsService_Transactions_NormalizesLegacyShape(t *testing.T) {
	raws := []core.RawRecord{
		{
			ID:         "legacy-1",
			Tipo:       "entrada",
			Precio:     floatPtr(3000),
			MetodoPago: "efectivo",
			Servicio:   "Barba",
			Fecha:      "2025-03-05T09:30:00Z",
		},
	}
	svc := NewResultsService(&fakeLister{raws: raws})

	txs, err := svc.Transactions(context.Background(), core.ScopeBusiness)
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("len(txs) = %d, want 1", len(txs))
	}

	tx := txs[0]
	if tx.Kind != core.IncomeBusiness {
		t.Errorf("Kind = %v, want %v", tx.Kind, core.IncomeBusiness)
	}
	if tx.Amount != 3000 {
		t.Errorf("Amount = %v, want 3000", tx.Amount)
	}
	if tx.ServiceRef == nil || tx.ServiceRef.Name != "Barba" {
		t.Errorf("ServiceRef = %+v, want name Barba", tx.ServiceRef)
	}
	want := time.Date(2025, 3, 5, 9, 30, 0, 0, time.UTC)
	if !tx.OccurredAt.Equal(want) {
		t.Errorf("OccurredAt = %v, want %v", tx.OccurredAt, want)
	}
}
