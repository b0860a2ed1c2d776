package http

import (
	"log/slog"
	"net/http"
	"time"

	"barberia/internal/core"
	"barberia/internal/report"
)

// periodSummary is the /api/periods item: the month bucket without its
// transaction payload.
type periodSummary struct {
	Year   int               `json:"year"`
	Month  int               `json:"month"`
	Label  string            `json:"label"`
	Totals core.PeriodTotals `json:"totals"`
	Count  int               `json:"transactionCount"`
}

// handleResults returns the aggregated view for the requested scope: totals
// plus the calendar-month periods, newest first.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	scope := parseScope(r)

	view, err := s.results.Results(r.Context(), scope)
	if err != nil {
		slog.ErrorContext(r.Context(), "Results computation failed", "error", err, "scope", scope)
		writeError(w, http.StatusInternalServerError, "could not compute results")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// handlePeriods returns the month buckets for the requested scope, newest
// first, each reduced to its label and totals.
func (s *Server) handlePeriods(w http.ResponseWriter, r *http.Request) {
	scope := parseScope(r)

	txs, err := s.results.Transactions(r.Context(), scope)
	if err != nil {
		slog.ErrorContext(r.Context(), "Period grouping failed", "error", err, "scope", scope)
		writeError(w, http.StatusInternalServerError, "could not group periods")
		return
	}

	periods := core.GroupByPeriod(txs)
	summaries := make([]periodSummary, 0, len(periods))
	for _, p := range periods {
		summaries = append(summaries, periodSummary{
			Year:   p.Year,
			Month:  p.Month,
			Label:  p.Label,
			Totals: core.ComputePeriodTotals(p.Transactions),
			Count:  len(p.Transactions),
		})
	}

	writeJSON(w, http.StatusOK, summaries)
}

// handleListTransactions returns the normalized scope-filtered snapshot.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	scope := parseScope(r)

	txs, err := s.results.Transactions(r.Context(), scope)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list failed", "error", err, "scope", scope)
		writeError(w, http.StatusInternalServerError, "could not list transactions")
		return
	}

	writeJSON(w, http.StatusOK, txs)
}

// handleExport streams the full results document as a JSON download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	scope := parseScope(r)

	txs, err := s.results.Transactions(r.Context(), scope)
	if err != nil {
		slog.ErrorContext(r.Context(), "Export failed", "error", err, "scope", scope)
		writeError(w, http.StatusInternalServerError, "could not build export")
		return
	}

	now := time.Now()
	doc := report.Build(scope, txs, func() time.Time { return now })

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.FileName(scope, now)+`"`)
	w.WriteHeader(http.StatusOK)

	if err := report.Write(w, doc); err != nil {
		slog.ErrorContext(r.Context(), "Export write failed", "error", err, "scope", scope)
	}
}
