package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ledger/internal/core"

	_ "modernc.org/sqlite"
)

// Ensure SQLiteRepository implements Store
var _ Store = (*SQLiteRepository)(nil)

const transactionColumns = `id, amount_cents, description, category_id, date, kind, owner_id, created_at, updated_at`

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// dsn enables foreign keys and a busy timeout on every pooled connection and
// makes BeginTx take the write lock up front.
func dsn(dbPath string) string {
	return "file:" + dbPath +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)" +
		"&_txlock=immediate"
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
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

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateCategory implements CategoryStore
func (r *SQLiteRepository) CreateCategory(ctx context.Context, c *core.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}

	var owner any
	if !c.IsShared() {
		owner = c.OwnerID
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (name, owner_id, created_at) VALUES (?, ?, ?)",
		c.Name, owner, r.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read category id: %w", err)
	}
	c.ID = id

	slog.InfoContext(ctx, "Category saved to SQLite", "id", c.ID, "owner_id", c.OwnerID)
	return nil
}

// ListCategories implements CategoryStore
func (r *SQLiteRepository) ListCategories(ctx context.Context, ownerID string) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, owner_id FROM categories WHERE owner_id = ? ORDER BY id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// GetCategory implements CategoryStore
func (r *SQLiteRepository) GetCategory(ctx context.Context, ownerID string, id int64) (core.Category, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, owner_id FROM categories WHERE id = ? AND owner_id = ?",
		id, ownerID,
	)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, fmt.Errorf("category %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// DeleteCategory implements CategoryStore. The ownership check, the
// nullification and the delete share one database transaction.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, ownerID string, id int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := categoryOwned(ctx, tx, ownerID, id); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE transactions SET category_id = NULL, updated_at = ? WHERE category_id = ? AND owner_id = ?",
		r.now().Unix(), id, ownerID,
	)
	if err != nil {
		return 0, fmt.Errorf("detach transactions: %w", err)
	}
	nullified, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count detached transactions: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE id = ? AND owner_id = ?", id, ownerID); err != nil {
		return 0, fmt.Errorf("delete category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Category deleted from SQLite", "id", id, "owner_id", ownerID, "nullified", nullified)
	return nullified, nil
}

// CreateTransaction implements TransactionStore
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t *core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if t.CategoryID != nil {
		if err := categoryOwned(ctx, tx, t.OwnerID, *t.CategoryID); err != nil {
			return err
		}
	}

	now := r.now().UTC().Truncate(time.Second)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (amount_cents, description, category_id, date, kind, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Amount.Cents, t.Description, nullableID(t.CategoryID), t.Date.String(), string(t.Kind), t.OwnerID,
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read transaction id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	t.ID = id
	t.CreatedAt = now
	t.UpdatedAt = now

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", t.ID,
		"owner_id", t.OwnerID,
		"kind", t.Kind,
		"amount_cents", t.Amount.Cents,
		"date", t.Date.String())
	return nil
}

// GetTransaction implements TransactionStore
func (r *SQLiteRepository) GetTransaction(ctx context.Context, ownerID string, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ? AND owner_id = ?",
		id, ownerID,
	)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// UpdateTransaction implements TransactionStore
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t *core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var created int64
	err = tx.QueryRowContext(ctx,
		"SELECT created_at FROM transactions WHERE id = ? AND owner_id = ?",
		t.ID, t.OwnerID,
	).Scan(&created)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("transaction %d: %w", t.ID, core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("check transaction: %w", err)
	}

	if t.CategoryID != nil {
		if err := categoryOwned(ctx, tx, t.OwnerID, *t.CategoryID); err != nil {
			return err
		}
	}

	now := r.now().UTC().Truncate(time.Second)
	_, err = tx.ExecContext(ctx,
		`UPDATE transactions
		 SET amount_cents = ?, description = ?, category_id = ?, date = ?, kind = ?, updated_at = ?
		 WHERE id = ? AND owner_id = ?`,
		t.Amount.Cents, t.Description, nullableID(t.CategoryID), t.Date.String(), string(t.Kind), now.Unix(),
		t.ID, t.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	t.CreatedAt = time.Unix(created, 0).UTC()
	t.UpdatedAt = now
	return nil
}

// DeleteTransaction implements TransactionStore
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, ownerID string, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("count deleted transactions: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}

	slog.InfoContext(ctx, "Transaction deleted from SQLite", "id", id, "owner_id", ownerID)
	return nil
}

// ListTransactions implements TransactionStore
func (r *SQLiteRepository) ListTransactions(ctx context.Context, ownerID string) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE owner_id = ? ORDER BY date DESC, id DESC",
		ownerID,
	)
}

// ListTransactionsBetween implements TransactionStore
func (r *SQLiteRepository) ListTransactionsBetween(ctx context.Context, ownerID string, from, to core.Date) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		"SELECT "+transactionColumns+` FROM transactions
		 WHERE owner_id = ? AND date >= ? AND date <= ?
		 ORDER BY date DESC, id DESC`,
		ownerID, from.String(), to.String(),
	)
}

// RecentTransactions implements TransactionStore
func (r *SQLiteRepository) RecentTransactions(ctx context.Context, ownerID string, limit int) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE owner_id = ? ORDER BY date DESC, id DESC LIMIT ?",
		ownerID, limit,
	)
}

func (r *SQLiteRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

// categoryOwned returns core.ErrNotFound unless id belongs to ownerID.
func categoryOwned(ctx context.Context, tx *sql.Tx, ownerID string, id int64) error {
	var exists int
	err := tx.QueryRowContext(ctx,
		"SELECT 1 FROM categories WHERE id = ? AND owner_id = ?",
		id, ownerID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("category %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}
