package firestore

import (
	"testing"
	"time"

	"barberia/internal/core"
)

func TestRawFromDoc_RemoteShape(t *testing.T) {
	server := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	raw := rawFromDoc("abc", map[string]interface{}{
		"type":      "entrada",
		"scope":     "negocio",
		"amount":    float64(4000),
		"method":    "efectivo",
		"serviceId": "1",
		"servicio":  "Cortes",
		"date":      server,
	})

	if raw.ID != "abc" || raw.Type != "entrada" || raw.Scope != "negocio" {
		t.Fatalf("raw = %+v", raw)
	}
	if raw.Amount == nil || *raw.Amount != 4000 {
		t.Fatalf("amount = %v", raw.Amount)
	}
	if raw.Date == nil || !raw.Date.Equal(server) {
		t.Fatalf("date = %v", raw.Date)
	}

	tx := core.Normalize(raw, nil)
	if tx.Kind != core.IncomeBusiness || tx.Amount != 4000 {
		t.Fatalf("normalized = %+v", tx)
	}
}

func TestRawFromDoc_LegacyShape(t *testing.T) {
	raw := rawFromDoc("legacy1", map[string]interface{}{
		"tipo":       "personal-salida",
		"monto":      int64(1500),
		"metodoPago": "sinpe",
		"categoria":  "Comida",
		"concepto":   "almuerzo",
		"fecha":      "2024-11-02T09:30:00Z",
	})

	if raw.Tipo != "personal-salida" || raw.Monto == nil || *raw.Monto != 1500 {
		t.Fatalf("raw = %+v", raw)
	}

	tx := core.Normalize(raw, nil)
	if tx.Kind != core.ExpensePersonal || tx.Method != core.SinpeMobile {
		t.Fatalf("normalized = %+v", tx)
	}
	if tx.CategoryRef == nil || tx.CategoryRef.Name != "Comida" {
		t.Fatalf("categoryRef = %+v", tx.CategoryRef)
	}
	if tx.OccurredAt.Year() != 2024 || tx.OccurredAt.Month() != time.November {
		t.Fatalf("occurredAt = %v", tx.OccurredAt)
	}
}

func TestRawFromDoc_CreatedAtFallback(t *testing.T) {
	created := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	raw := rawFromDoc("x", map[string]interface{}{
		"type":      "salida",
		"amount":    float64(900),
		"createdAt": created,
	})
	tx := core.Normalize(raw, nil)
	if !tx.OccurredAt.Equal(created) {
		t.Fatalf("occurredAt = %v, want createdAt %v", tx.OccurredAt, created)
	}
}

func TestRawFromDoc_MissingNumbers(t *testing.T) {
	raw := rawFromDoc("y", map[string]interface{}{"type": "entrada"})
	if raw.Amount != nil || raw.Monto != nil || raw.Precio != nil {
		t.Fatalf("expected nil amounts, got %+v", raw)
	}
	tx := core.Normalize(raw, nil)
	if tx.Amount != 0 {
		t.Fatalf("amount = %v, want 0", tx.Amount)
	}
}
