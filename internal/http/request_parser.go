package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"barberia/internal/core"
)

// maxBodySize caps request bodies at 64 KiB. Transaction and catalog payloads
// are small; anything larger is misuse.
const maxBodySize = 64 << 10

var errBodyTooLarge = errors.New("request body too large")

// decodeBody reads and unmarshals a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodySize {
		return errBodyTooLarge
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	return nil
}

// parseTransactionRequest decodes a transaction payload. The body is accepted
// in raw-record form, so clients may submit either field generation
// (type/amount/method or tipo/monto/metodoPago); normalization resolves the
// aliases exactly as reads do.
func parseTransactionRequest(r *http.Request) (core.Transaction, error) {
	var raw core.RawRecord
	if err := decodeBody(r, &raw); err != nil {
		return core.Transaction{}, err
	}

	raw.Description = sanitizeInput(raw.Description)
	raw.Concepto = sanitizeInput(raw.Concepto)

	tx := core.Normalize(raw, nil)
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	// Reads tolerate missing amounts; writes must carry one.
	if tx.Amount == 0 {
		return core.Transaction{}, core.ErrInvalidAmount
	}
	return tx, nil
}

// parseScope reads the scope query parameter. Missing or unrecognized values
// resolve to the business scope.
func parseScope(r *http.Request) core.ResultScope {
	return core.ParseResultScope(r.URL.Query().Get("scope"))
}
