// Package storage is the SQLite adapter: the durable local store the server
// writes to first, and the source the sync worker replays toward Firestore.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"barberia/internal/core"
	"barberia/internal/store"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Add implements store.TransactionWriter. A missing id gets a fresh UUID;
// a zero occurredAt is stamped with the local clock.
func (r *SQLiteRepository) Add(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.OccurredAt.IsZero() {
		tx.OccurredAt = time.Now()
	}

	var serviceID, serviceName, categoryID, categoryName sql.NullString
	if tx.ServiceRef != nil {
		serviceID = sql.NullString{String: tx.ServiceRef.ID, Valid: true}
		serviceName = sql.NullString{String: tx.ServiceRef.Name, Valid: true}
	}
	if tx.CategoryRef != nil {
		categoryID = sql.NullString{String: tx.CategoryRef.ID, Valid: true}
		categoryName = sql.NullString{String: tx.CategoryRef.Name, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, kind, amount, method, service_id, service_name, category_id, category_name, note, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, string(tx.Kind), tx.Amount, string(tx.Method),
		serviceID, serviceName, categoryID, categoryName,
		nullableString(tx.Note), tx.OccurredAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"transaction_id", tx.ID,
		"kind", tx.Kind,
		"amount", tx.Amount,
		"payment_method", tx.Method)

	return tx.ID, nil
}

// Get returns one live transaction by id.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, kind, amount, method, service_id, service_name, category_id, category_name, note, occurred_at
		FROM transactions WHERE id = ? AND deleted = 0`, id)
	tx, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %s: %w", id, err)
	}
	return tx, nil
}

// Delete soft-deletes so the row stays visible to the sync worker until the
// remote delete has been replayed.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE transactions SET deleted = 1 WHERE id = ? AND deleted = 0`, id)
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// Clear soft-deletes every live transaction and returns the ids touched so
// the caller can fan out remote deletes.
func (r *SQLiteRepository) Clear(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM transactions WHERE deleted = 0`)
	if err != nil {
		return nil, fmt.Errorf("list transactions for clear: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan transaction id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction ids: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE transactions SET deleted = 1 WHERE deleted = 0`); err != nil {
		return nil, fmt.Errorf("clear transactions: %w", err)
	}
	return ids, nil
}

// ListRaw implements store.RawLister. Rows come back in the legacy shape:
// kind in the tipo field and occurred_at as an ISO string, exercising the
// normalizer's string-date path.
func (r *SQLiteRepository) ListRaw(ctx context.Context) ([]core.RawRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, amount, method, service_id, service_name, category_id, category_name, note, occurred_at
		FROM transactions WHERE deleted = 0`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var raws []core.RawRecord
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		amount := tx.Amount
		raw := core.RawRecord{
			ID:         tx.ID,
			Tipo:       string(tx.Kind),
			Scope:      string(tx.Kind.Scope()),
			Monto:      &amount,
			MetodoPago: string(tx.Method),
			Concepto:   tx.Note,
			Fecha:      tx.OccurredAt.UTC().Format(time.RFC3339),
		}
		if tx.ServiceRef != nil {
			raw.ServiceID = tx.ServiceRef.ID
			raw.Servicio = tx.ServiceRef.Name
		}
		if tx.CategoryRef != nil {
			raw.CategoryID = tx.CategoryRef.ID
			raw.Categoria = tx.CategoryRef.Name
		}
		raws = append(raws, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return raws, nil
}

// ListPendingSync returns live transactions that have not reached the remote
// store yet, oldest first.
func (r *SQLiteRepository) ListPendingSync(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, amount, method, service_id, service_name, category_id, category_name, note, occurred_at
		FROM transactions WHERE deleted = 0 AND synced_at IS NULL
		ORDER BY created_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending transactions: %w", err)
	}
	return txs, nil
}

// MarkSynced records that the remote store holds the transaction.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET synced_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("mark transaction %s synced: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) ListServices(ctx context.Context) ([]core.Service, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price, scope, active FROM services ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []core.Service
	for rows.Next() {
		var s core.Service
		var active int
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.Scope, &active); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		s.Active = active != 0
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}
	return services, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.ExpenseCategory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, scope, active FROM expense_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []core.ExpenseCategory
	for rows.Next() {
		var c core.ExpenseCategory
		var active int
		if err := rows.Scan(&c.ID, &c.Name, &c.Scope, &active); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Active = active != 0
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

func (r *SQLiteRepository) SaveService(ctx context.Context, s core.Service) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO services (id, name, price, scope, active) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, price = excluded.price, scope = excluded.scope, active = excluded.active`,
		s.ID, s.Name, s.Price, string(s.Scope), boolToInt(s.Active))
	if err != nil {
		return "", fmt.Errorf("save service: %w", err)
	}
	return s.ID, nil
}

func (r *SQLiteRepository) SaveCategory(ctx context.Context, c core.ExpenseCategory) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expense_categories (id, name, scope, active) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, scope = excluded.scope, active = excluded.active`,
		c.ID, c.Name, string(c.Scope), boolToInt(c.Active))
	if err != nil {
		return "", fmt.Errorf("save category: %w", err)
	}
	return c.ID, nil
}

func (r *SQLiteRepository) DeleteService(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete service %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expense_categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		tx           core.Transaction
		kind, method string
		serviceID    sql.NullString
		serviceName  sql.NullString
		categoryID   sql.NullString
		categoryName sql.NullString
		note         sql.NullString
		occurredAt   string
	)
	if err := row.Scan(&tx.ID, &kind, &tx.Amount, &method,
		&serviceID, &serviceName, &categoryID, &categoryName, &note, &occurredAt); err != nil {
		return core.Transaction{}, err
	}

	tx.Kind = core.Kind(kind)
	tx.Method = core.Method(method)
	tx.Note = note.String
	if serviceID.Valid || serviceName.Valid {
		tx.ServiceRef = &core.CatalogRef{ID: serviceID.String, Name: serviceName.String}
	}
	if categoryID.Valid || categoryName.Valid {
		tx.CategoryRef = &core.CatalogRef{ID: categoryID.String, Name: categoryName.String}
	}
	if t, ok := core.ParseTimestamp(occurredAt); ok {
		tx.OccurredAt = t
	}
	return tx, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
