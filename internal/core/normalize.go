// Package core implements the results aggregation engine: normalization of
// raw store records into canonical transactions, scope-filtered totals,
// calendar-month grouping and display formatting.
package core

import (
	"math"
	"time"
)

// RawRecord is the union of the two external record shapes the stores yield:
// the legacy local shape (tipo/servicio/concepto/monto/fecha) and the remote
// store shape (type/serviceId/description/amount/date). Overlapping fields
// are kept side by side; Normalize resolves them with a fixed priority.
type RawRecord struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Tipo  string `json:"tipo"`
	Scope string `json:"scope"`

	Amount *float64 `json:"amount"`
	Precio *float64 `json:"precio"`
	Monto  *float64 `json:"monto"`

	Method     string `json:"method"`
	MetodoPago string `json:"metodoPago"`

	ServiceID string `json:"serviceId"`
	Servicio  string `json:"servicio"`

	CategoryID string `json:"categoryId"`
	Categoria  string `json:"categoria"`

	Description string `json:"description"`
	Concepto    string `json:"concepto"`

	// Date and CreatedAt carry server-side timestamps already converted by
	// the store layer; Fecha is the legacy ISO string.
	Date      *time.Time `json:"date,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	Fecha     string     `json:"fecha,omitempty"`
}

// Normalize maps one raw record onto the canonical Transaction. It is total:
// missing optional fields resolve to defaults (amount 0, method cash, scope
// inferred from the kind prefix) and never to an error. The now function
// supplies the wall clock used as the last-resort occurredAt fallback; a nil
// now means time.Now.
//
// The clock fallback is a data-quality measure: a record without any
// resolvable timestamp is filed under the month it was normalized in, which
// can differ from the month it actually belongs to.
func Normalize(raw RawRecord, now func() time.Time) Transaction {
	if now == nil {
		now = time.Now
	}

	tipo := firstNonEmpty(raw.Type, raw.Tipo)
	kind := KindFor(tipo, Scope(raw.Scope))

	tx := Transaction{
		ID:         raw.ID,
		Kind:       kind,
		Amount:     math.Abs(resolveAmount(raw)),
		Method:     ParseMethod(firstNonEmpty(raw.Method, raw.MetodoPago)),
		Note:       firstNonEmpty(raw.Description, raw.Concepto),
		OccurredAt: resolveOccurredAt(raw, now),
	}

	if kind.IsIncome() && (raw.ServiceID != "" || raw.Servicio != "") {
		tx.ServiceRef = &CatalogRef{ID: raw.ServiceID, Name: raw.Servicio}
	}
	if kind.IsExpense() && (raw.CategoryID != "" || raw.Categoria != "") {
		tx.CategoryRef = &CatalogRef{ID: raw.CategoryID, Name: raw.Categoria}
	}

	return tx
}

// NormalizeAll maps a whole snapshot. The input slice is never mutated.
func NormalizeAll(raws []RawRecord, now func() time.Time) []Transaction {
	txs := make([]Transaction, 0, len(raws))
	for _, raw := range raws {
		txs = append(txs, Normalize(raw, now))
	}
	return txs
}

// resolveAmount applies the alias priority amount > precio > monto > 0.
// Precio is the oldest alias, written by the first local-storage era for
// service income.
func resolveAmount(raw RawRecord) float64 {
	switch {
	case raw.Amount != nil:
		return *raw.Amount
	case raw.Precio != nil:
		return *raw.Precio
	case raw.Monto != nil:
		return *raw.Monto
	default:
		return 0
	}
}

func resolveOccurredAt(raw RawRecord, now func() time.Time) time.Time {
	if raw.Date != nil && !raw.Date.IsZero() {
		return *raw.Date
	}
	if raw.CreatedAt != nil && !raw.CreatedAt.IsZero() {
		return *raw.CreatedAt
	}
	if raw.Fecha != "" {
		if t, ok := ParseTimestamp(raw.Fecha); ok {
			return t
		}
	}
	return now()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
