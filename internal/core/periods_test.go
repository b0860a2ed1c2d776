package core

import (
	"testing"
	"time"
)

func TestGroupByPeriod_OrderingAndPartition(t *testing.T) {
	txs := sampleTransactions()
	periods := GroupByPeriod(txs)

	if len(periods) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(periods))
	}

	// Newest month first: February 2025 sorts before January 2025.
	if periods[0].Year != 2025 || periods[0].Month != 2 {
		t.Fatalf("first period = %d-%02d, want 2025-02", periods[0].Year, periods[0].Month)
	}
	if periods[1].Year != 2025 || periods[1].Month != 1 {
		t.Fatalf("second period = %d-%02d, want 2025-01", periods[1].Year, periods[1].Month)
	}

	total := 0
	seen := map[string]bool{}
	for _, p := range periods {
		total += len(p.Transactions)
		for _, tx := range p.Transactions {
			if seen[tx.ID] {
				t.Fatalf("transaction %s appears in more than one period", tx.ID)
			}
			seen[tx.ID] = true
		}
	}
	if total != len(txs) {
		t.Fatalf("periods hold %d transactions, input had %d", total, len(txs))
	}

	febTotals := ComputePeriodTotals(periods[0].Transactions)
	if febTotals.TotalIncome != 2000 || febTotals.TotalExpense != 0 {
		t.Fatalf("february totals = %+v", febTotals)
	}
	janTotals := ComputePeriodTotals(periods[1].Transactions)
	if janTotals.TotalIncome != 4000 || janTotals.TotalExpense != 1500 || janTotals.Balance != 2500 {
		t.Fatalf("january totals = %+v", janTotals)
	}
}

func TestGroupByPeriod_DescendingAcrossYears(t *testing.T) {
	txs := []Transaction{
		tx(IncomeBusiness, 1, Cash, "2023-12-15T12:00:00Z"),
		tx(IncomeBusiness, 2, Cash, "2025-03-15T12:00:00Z"),
		tx(IncomeBusiness, 3, Cash, "2024-06-15T12:00:00Z"),
		tx(IncomeBusiness, 4, Cash, "2024-07-15T12:00:00Z"),
	}
	periods := GroupByPeriod(txs)

	for i := 1; i < len(periods); i++ {
		prev, cur := periods[i-1], periods[i]
		if cur.Year > prev.Year || (cur.Year == prev.Year && cur.Month >= prev.Month) {
			t.Fatalf("periods not strictly descending at %d: %d-%02d before %d-%02d",
				i, prev.Year, prev.Month, cur.Year, cur.Month)
		}
	}
}

func TestGroupByPeriod_TransactionsNewestFirstWithinPeriod(t *testing.T) {
	txs := []Transaction{
		tx(IncomeBusiness, 1, Cash, "2025-04-10T09:00:00Z"),
		tx(ExpenseBusiness, 2, Cash, "2025-04-20T09:00:00Z"),
		tx(IncomeBusiness, 3, Cash, "2025-04-15T09:00:00Z"),
	}
	periods := GroupByPeriod(txs)
	if len(periods) != 1 {
		t.Fatalf("expected 1 period, got %d", len(periods))
	}
	group := periods[0].Transactions
	for i := 1; i < len(group); i++ {
		if group[i].OccurredAt.After(group[i-1].OccurredAt) {
			t.Fatalf("transactions not newest-first: %v before %v", group[i-1].OccurredAt, group[i].OccurredAt)
		}
	}
}

func TestGroupByPeriod_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	same := "2025-06-15T10:00:00Z"
	txs := []Transaction{
		{ID: "a", Kind: IncomeBusiness, Amount: 1, Method: Cash, OccurredAt: mustParse(t, same)},
		{ID: "b", Kind: IncomeBusiness, Amount: 2, Method: Cash, OccurredAt: mustParse(t, same)},
		{ID: "c", Kind: IncomeBusiness, Amount: 3, Method: Cash, OccurredAt: mustParse(t, same)},
	}
	periods := GroupByPeriod(txs)
	got := periods[0].Transactions
	for i, want := range []string{"a", "b", "c"} {
		if got[i].ID != want {
			t.Fatalf("position %d = %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestGroupByPeriod_Empty(t *testing.T) {
	if periods := GroupByPeriod(nil); len(periods) != 0 {
		t.Fatalf("expected no periods for empty input, got %d", len(periods))
	}
}

func TestGroupByPeriod_Idempotence(t *testing.T) {
	txs := sampleTransactions()
	first := GroupByPeriod(txs)
	second := GroupByPeriod(txs)
	if len(first) != len(second) {
		t.Fatalf("period count diverged: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Label != second[i].Label || len(first[i].Transactions) != len(second[i].Transactions) {
			t.Fatalf("period %d diverged between calls", i)
		}
	}
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		year, month int
		want        string
	}{
		{2025, 1, "Enero 2025"},
		{2025, 9, "Septiembre 2025"},
		{2024, 12, "Diciembre 2024"},
		{2024, 0, "2024-00"},
		{2024, 13, "2024-13"},
	}
	for _, tt := range tests {
		if got := PeriodLabel(tt.year, tt.month); got != tt.want {
			t.Errorf("PeriodLabel(%d, %d) = %q, want %q", tt.year, tt.month, got, tt.want)
		}
	}
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}
