package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"barberia/internal/core"
)

func init() {
	// Pin formatting to UTC so expected display strings are stable across
	// machines.
	time.Local = time.UTC
}

func sampleTransactions() []core.Transaction {
	return []core.Transaction{
		{
			ID:         "tx-1",
			Kind:       core.IncomeBusiness,
			Amount:     4000,
			Method:     core.Cash,
			OccurredAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:         "tx-2",
			Kind:       core.ExpenseBusiness,
			Amount:     1500,
			Method:     core.SinpeMobile,
			OccurredAt: time.Date(2025, 2, 20, 14, 30, 0, 0, time.UTC),
		},
	}
}

func TestBuild(t *testing.T) {
	exportedAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	r := Build(core.ScopeBusiness, sampleTransactions(), func() time.Time { return exportedAt })

	if !r.ExportedAt.Equal(exportedAt) {
		t.Errorf("ExportedAt = %v, want %v", r.ExportedAt, exportedAt)
	}
	if r.Scope != core.ScopeBusiness {
		t.Errorf("Scope = %v, want %v", r.Scope, core.ScopeBusiness)
	}
	if r.Totals.Balance != 2500 {
		t.Errorf("Balance = %v, want 2500", r.Totals.Balance)
	}
	if len(r.Periods) != 2 {
		t.Fatalf("len(Periods) = %d, want 2", len(r.Periods))
	}
	// Newest period first
	if r.Periods[0].Label != "Febrero 2025" || r.Periods[1].Label != "Enero 2025" {
		t.Errorf("period labels = [%s, %s], want [Febrero 2025, Enero 2025]",
			r.Periods[0].Label, r.Periods[1].Label)
	}
	if r.Periods[0].Totals.TotalExpense != 1500 {
		t.Errorf("February TotalExpense = %v, want 1500", r.Periods[0].Totals.TotalExpense)
	}
	if len(r.Transactions) != 2 {
		t.Fatalf("len(Transactions) = %d, want 2", len(r.Transactions))
	}
	// Flat list follows period order, newest first
	if r.Transactions[0].ID != "tx-2" {
		t.Errorf("first flat transaction = %s, want tx-2", r.Transactions[0].ID)
	}
}

func TestBuild_FormattedFields(t *testing.T) {
	r := Build(core.ScopeBusiness, sampleTransactions(), nil)

	byID := map[string]AnnotatedTransaction{}
	for _, tx := range r.Transactions {
		byID[tx.ID] = tx
	}

	if got := byID["tx-1"].FormattedAmount; got != "₡4.000" {
		t.Errorf("income FormattedAmount = %q, want ₡4.000", got)
	}
	if got := byID["tx-2"].FormattedAmount; got != "-₡1.500" {
		t.Errorf("expense FormattedAmount = %q, want -₡1.500", got)
	}
	if got := byID["tx-1"].FormattedDate; got != "15/01/2025 10:00" {
		t.Errorf("FormattedDate = %q, want 15/01/2025 10:00", got)
	}
}

func TestBuild_Empty(t *testing.T) {
	r := Build(core.ScopeAll, nil, nil)

	if r.Totals != (core.Totals{}) {
		t.Errorf("Totals = %+v, want zero value", r.Totals)
	}
	if len(r.Periods) != 0 || len(r.Transactions) != 0 {
		t.Errorf("expected empty report, got %d periods, %d transactions",
			len(r.Periods), len(r.Transactions))
	}
}

func TestWrite_IndentedJSON(t *testing.T) {
	var buf bytes.Buffer
	r := Build(core.ScopeBusiness, sampleTransactions(), func() time.Time {
		return time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	})

	if err := Write(&buf, r); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "{\n  \"exportedAt\"") {
		t.Errorf("output should start with two-space indented exportedAt, got %q", out[:40])
	}
	if !strings.Contains(out, `"label": "Enero 2025"`) {
		t.Error("output should contain the Spanish period label")
	}
	if !strings.Contains(out, `"formattedAmount": "₡4.000"`) {
		t.Error("output should contain the formatted amount")
	}
}

func TestFileName(t *testing.T) {
	at := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	if got := FileName(core.ScopeBusiness, at); got != "barberia-negocio-2025-03-01.json" {
		t.Errorf("FileName() = %q, want barberia-negocio-2025-03-01.json", got)
	}
	if got := FileName(core.ScopeAll, at); got != "barberia-todas-2025-03-01.json" {
		t.Errorf("FileName() = %q, want barberia-todas-2025-03-01.json", got)
	}
}
