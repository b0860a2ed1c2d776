package core

import (
	"reflect"
	"testing"
	"time"
)

func tx(kind Kind, amount float64, method Method, occurred string) Transaction {
	t, _ := time.Parse(time.RFC3339, occurred)
	return Transaction{ID: occurred, Kind: kind, Amount: amount, Method: method, OccurredAt: t}
}

func sampleTransactions() []Transaction {
	return []Transaction{
		tx(IncomeBusiness, 4000, Cash, "2025-01-15T10:00:00Z"),
		tx(ExpenseBusiness, 1500, SinpeMobile, "2025-01-20T10:00:00Z"),
		tx(IncomePersonal, 2000, Cash, "2025-02-10T10:00:00Z"),
	}
}

func TestComputeTotals_BusinessScope(t *testing.T) {
	got := ComputeTotals(sampleTransactions(), ScopeBusiness)
	want := Totals{
		TotalIncome:  4000,
		TotalExpense: 1500,
		Balance:      2500,
		Cash:         4000,
		Sinpe:        -1500,
		Count:        2,
	}
	if got != want {
		t.Fatalf("ComputeTotals(ScopeBusiness) = %+v, want %+v", got, want)
	}
}

func TestComputeTotals_AllScopes(t *testing.T) {
	got := ComputeTotals(sampleTransactions(), ScopeAll)
	want := Totals{
		TotalIncome:  6000,
		TotalExpense: 1500,
		Balance:      4500,
		Cash:         6000,
		Sinpe:        -1500,
		Count:        3,
	}
	if got != want {
		t.Fatalf("ComputeTotals(ScopeAll) = %+v, want %+v", got, want)
	}
}

func TestComputeTotals_EmptyInput(t *testing.T) {
	for _, scope := range []ResultScope{ScopeBusiness, ScopeAll} {
		if got := ComputeTotals(nil, scope); got != (Totals{}) {
			t.Errorf("ComputeTotals(nil, %s) = %+v, want zero totals", scope, got)
		}
	}
}

func TestComputeTotals_BalanceIdentity(t *testing.T) {
	collections := [][]Transaction{
		nil,
		sampleTransactions(),
		{
			tx(ExpensePersonal, 999.5, SinpeMobile, "2024-12-12T08:00:00Z"),
			tx(IncomeBusiness, 12000, SinpeMobile, "2024-11-11T08:00:00Z"),
			{ID: "x", Kind: "ajuste", Amount: 77, Method: Cash},
		},
	}
	for _, txs := range collections {
		for _, scope := range []ResultScope{ScopeBusiness, ScopeAll} {
			got := ComputeTotals(txs, scope)
			if got.Balance != got.TotalIncome-got.TotalExpense {
				t.Errorf("balance %v != income %v - expense %v", got.Balance, got.TotalIncome, got.TotalExpense)
			}
		}
	}
}

func TestComputeTotals_ScopePartition(t *testing.T) {
	tests := []struct {
		name      string
		txs       []Transaction
		wantEqual bool
	}{
		{"business only", []Transaction{
			tx(IncomeBusiness, 100, Cash, "2025-03-10T10:00:00Z"),
			tx(ExpenseBusiness, 40, Cash, "2025-03-11T10:00:00Z"),
		}, true},
		{"mixed", sampleTransactions(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			business := ComputeTotals(tt.txs, ScopeBusiness).Count
			all := ComputeTotals(tt.txs, ScopeAll).Count
			if business > all {
				t.Fatalf("business count %d > all count %d", business, all)
			}
			if (business == all) != tt.wantEqual {
				t.Fatalf("count equality = %v, want %v (business=%d all=%d)", business == all, tt.wantEqual, business, all)
			}
		})
	}
}

// A kind outside the four known variants is counted but moves no sums and no
// per-method net.
func TestComputeTotals_UnknownKindPolicy(t *testing.T) {
	txs := []Transaction{
		tx(IncomeBusiness, 1000, Cash, "2025-05-10T10:00:00Z"),
		{ID: "m1", Kind: "ajuste", Amount: 500, Method: Cash, OccurredAt: time.Now()},
		{ID: "m2", Kind: KindUnknown, Amount: 300, Method: SinpeMobile, OccurredAt: time.Now()},
	}
	got := ComputeTotals(txs, ScopeAll)
	want := Totals{TotalIncome: 1000, Balance: 1000, Cash: 1000, Count: 3}
	if got != want {
		t.Fatalf("ComputeTotals with unknown kinds = %+v, want %+v", got, want)
	}
}

func TestComputeTotals_Idempotence(t *testing.T) {
	txs := sampleTransactions()
	first := ComputeTotals(txs, ScopeBusiness)
	second := ComputeTotals(txs, ScopeBusiness)
	if first != second {
		t.Fatalf("repeated call diverged: %+v vs %+v", first, second)
	}
}

func TestFilterByScope_DoesNotMutateInput(t *testing.T) {
	txs := sampleTransactions()
	snapshot := make([]Transaction, len(txs))
	copy(snapshot, txs)

	FilterByScope(txs, ScopeBusiness)
	ComputeTotals(txs, ScopeBusiness)

	if !reflect.DeepEqual(txs, snapshot) {
		t.Fatal("input collection was mutated")
	}
}

func TestComputePeriodTotals(t *testing.T) {
	tests := []struct {
		name string
		txs  []Transaction
		want PeriodTotals
	}{
		{"empty", nil, PeriodTotals{}},
		{"january bucket", []Transaction{
			tx(IncomeBusiness, 4000, Cash, "2025-01-15T10:00:00Z"),
			tx(ExpenseBusiness, 1500, SinpeMobile, "2025-01-20T10:00:00Z"),
		}, PeriodTotals{TotalIncome: 4000, TotalExpense: 1500, Balance: 2500}},
		{"ignores unknown kinds", []Transaction{
			tx(IncomePersonal, 2000, Cash, "2025-02-10T10:00:00Z"),
			{ID: "u", Kind: "ajuste", Amount: 900, Method: Cash},
		}, PeriodTotals{TotalIncome: 2000, Balance: 2000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputePeriodTotals(tt.txs); got != tt.want {
				t.Fatalf("ComputePeriodTotals() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
