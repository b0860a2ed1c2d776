// Package report builds the JSON export document: the full snapshot of a
// results view with display-formatted amounts and dates alongside the raw
// values.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"barberia/internal/core"
)

// AnnotatedTransaction is a transaction plus its display strings, so the
// exported file is readable without re-deriving colón formatting.
type AnnotatedTransaction struct {
	core.Transaction
	FormattedAmount string `json:"formattedAmount"`
	FormattedDate   string `json:"formattedDate"`
}

// PeriodSection is one calendar-month slice of the export.
type PeriodSection struct {
	Year         int                    `json:"year"`
	Month        int                    `json:"month"`
	Label        string                 `json:"label"`
	Totals       core.PeriodTotals      `json:"totals"`
	Transactions []AnnotatedTransaction `json:"transactions"`
}

// Report is the export document. Transactions holds the flat newest-first
// list; Periods the same records grouped by calendar month.
type Report struct {
	ExportedAt   time.Time              `json:"exportedAt"`
	Scope        core.ResultScope       `json:"scope"`
	Totals       core.Totals            `json:"totals"`
	Periods      []PeriodSection        `json:"periods"`
	Transactions []AnnotatedTransaction `json:"transactions"`
}

// Build aggregates the scope-filtered transactions into an export document.
// The now function stamps ExportedAt; nil means time.Now.
func Build(scope core.ResultScope, txs []core.Transaction, now func() time.Time) Report {
	if now == nil {
		now = time.Now
	}

	periods := core.GroupByPeriod(txs)
	sections := make([]PeriodSection, 0, len(periods))
	flat := make([]AnnotatedTransaction, 0, len(txs))

	for _, p := range periods {
		section := PeriodSection{
			Year:         p.Year,
			Month:        p.Month,
			Label:        p.Label,
			Totals:       core.ComputePeriodTotals(p.Transactions),
			Transactions: annotate(p.Transactions),
		}
		sections = append(sections, section)
		flat = append(flat, section.Transactions...)
	}

	// Callers pass transactions already filtered to the scope.
	return Report{
		ExportedAt:   now(),
		Scope:        scope,
		Totals:       core.ComputeTotals(txs, core.ScopeAll),
		Periods:      sections,
		Transactions: flat,
	}
}

func annotate(txs []core.Transaction) []AnnotatedTransaction {
	out := make([]AnnotatedTransaction, 0, len(txs))
	for _, tx := range txs {
		amount := tx.Amount
		if tx.Kind.IsExpense() {
			amount = -amount
		}
		out = append(out, AnnotatedTransaction{
			Transaction:     tx,
			FormattedAmount: core.FormatCurrency(amount),
			FormattedDate:   core.FormatTimestamp(tx.OccurredAt),
		})
	}
	return out
}

// Write renders the report as indented JSON.
func Write(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// FileName builds the download name for an export taken at the given time.
func FileName(scope core.ResultScope, at time.Time) string {
	return fmt.Sprintf("barberia-%s-%s.json", scope, at.Format("2006-01-02"))
}
