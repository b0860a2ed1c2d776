package core

// FilterByScope returns the transactions a result scope retains: only the
// business ledger for ScopeBusiness, everything for ScopeAll. The input is
// never mutated; the business filter allocates a fresh slice.
func FilterByScope(txs []Transaction, scope ResultScope) []Transaction {
	if scope != ScopeBusiness {
		return txs
	}
	retained := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Kind.Scope() == ScopeNegocio {
			retained = append(retained, tx)
		}
	}
	return retained
}

// ComputeTotals reduces a transaction collection to its aggregate sums under
// the given result scope. It is pure and total: an empty collection yields
// all-zero totals and no input value can make it fail.
//
// A transaction whose kind is not one of the four known variants counts
// toward Count but contributes to neither the income/expense sums nor the
// per-method nets.
func ComputeTotals(txs []Transaction, scope ResultScope) Totals {
	var totals Totals
	for _, tx := range FilterByScope(txs, scope) {
		totals.Count++

		var delta float64
		switch {
		case tx.Kind.IsIncome():
			totals.TotalIncome += tx.Amount
			delta = tx.Amount
		case tx.Kind.IsExpense():
			totals.TotalExpense += tx.Amount
			delta = -tx.Amount
		default:
			continue
		}

		switch tx.Method {
		case Cash:
			totals.Cash += delta
		case SinpeMobile:
			totals.Sinpe += delta
		}
	}
	totals.Balance = totals.TotalIncome - totals.TotalExpense
	return totals
}

// ComputePeriodTotals reduces one period bucket to its income, expense and
// balance sums. No scope filtering happens here; callers pass collections
// they have already filtered or grouped.
func ComputePeriodTotals(txs []Transaction) PeriodTotals {
	var totals PeriodTotals
	for _, tx := range txs {
		switch {
		case tx.Kind.IsIncome():
			totals.TotalIncome += tx.Amount
		case tx.Kind.IsExpense():
			totals.TotalExpense += tx.Amount
		}
	}
	totals.Balance = totals.TotalIncome - totals.TotalExpense
	return totals
}
