// Package storage persists categories and transactions. Every operation is
// scoped to a single owner; the store never reads or writes across owners.
package storage

import (
	"context"

	"ledger/internal/core"
)

// Ports for the ledger services.
type (
	CategoryStore interface {
		// CreateCategory inserts c and sets c.ID.
		CreateCategory(ctx context.Context, c *core.Category) error

		// ListCategories returns the categories owned by ownerID, oldest first.
		// Shared categories are not included.
		ListCategories(ctx context.Context, ownerID string) ([]core.Category, error)

		// GetCategory returns core.ErrNotFound unless id is owned by ownerID.
		GetCategory(ctx context.Context, ownerID string, id int64) (core.Category, error)

		// DeleteCategory detaches every transaction of ownerID from the category
		// and removes it, as one atomic unit. It returns the number of
		// transactions that became uncategorized, or core.ErrNotFound.
		DeleteCategory(ctx context.Context, ownerID string, id int64) (int64, error)
	}

	TransactionStore interface {
		// CreateTransaction inserts t and sets t.ID and timestamps.
		CreateTransaction(ctx context.Context, t *core.Transaction) error

		// GetTransaction returns core.ErrNotFound unless id is owned by ownerID.
		GetTransaction(ctx context.Context, ownerID string, id int64) (core.Transaction, error)

		// UpdateTransaction replaces every mutable field of t.
		UpdateTransaction(ctx context.Context, t *core.Transaction) error

		DeleteTransaction(ctx context.Context, ownerID string, id int64) error

		// ListTransactions returns all transactions of ownerID, newest date
		// first, ties broken by id descending.
		ListTransactions(ctx context.Context, ownerID string) ([]core.Transaction, error)

		// ListTransactionsBetween is ListTransactions restricted to an
		// inclusive date range.
		ListTransactionsBetween(ctx context.Context, ownerID string, from, to core.Date) ([]core.Transaction, error)

		// RecentTransactions returns at most limit transactions in
		// ListTransactions order.
		RecentTransactions(ctx context.Context, ownerID string, limit int) ([]core.Transaction, error)
	}

	Store interface {
		CategoryStore
		TransactionStore
		Close() error
	}
)
