package http

import (
	"errors"
	"log/slog"
	"net/http"

	"barberia/internal/store"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := parseTransactionRequest(r)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, err.Error())
		return
	}

	id, err := s.store.Add(r.Context(), tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction save failed",
			"error", err,
			"kind", tx.Kind,
			"amount", tx.Amount)
		writeError(w, http.StatusInternalServerError, "could not save transaction")
		return
	}
	tx.ID = id

	slog.InfoContext(r.Context(), "Transaction created",
		"transaction_id", id,
		"kind", tx.Kind,
		"amount", tx.Amount,
		"payment_method", tx.Method)

	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		slog.ErrorContext(r.Context(), "Transaction delete failed", "error", err, "transaction_id", id)
		writeError(w, http.StatusInternalServerError, "could not delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleClearTransactions drops every transaction. There is no undo, so the
// request must carry confirm=true.
func (s *Server) handleClearTransactions(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "clearing all transactions requires confirm=true")
		return
	}

	if err := s.store.Clear(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Transaction clear failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not clear transactions")
		return
	}

	slog.InfoContext(r.Context(), "All transactions cleared")
	w.WriteHeader(http.StatusNoContent)
}
