package storage

import (
	"database/sql"
	"time"

	"ledger/internal/core"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (core.Category, error) {
	var (
		c     core.Category
		owner sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &owner); err != nil {
		return core.Category{}, err
	}
	c.OwnerID = owner.String
	return c, nil
}

// scanTransaction decodes a transactions row. The schema does not constrain
// amount, kind or date, so each is checked here and a violation surfaces as a
// *core.CorruptRecordError instead of a silently wrong value.
func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t                core.Transaction
		amount           any
		category         sql.NullInt64
		date, kind       string
		created, updated int64
	)
	err := row.Scan(&t.ID, &amount, &t.Description, &category, &date, &kind, &t.OwnerID, &created, &updated)
	if err != nil {
		return core.Transaction{}, err
	}

	corrupt := func(field string, value any) (core.Transaction, error) {
		return core.Transaction{}, &core.CorruptRecordError{Table: "transactions", ID: t.ID, Field: field, Value: value}
	}

	cents, ok := amount.(int64)
	if !ok || cents <= 0 || cents > core.MaxCents {
		return corrupt("amount_cents", amount)
	}
	t.Amount = core.Money{Cents: cents}

	t.Kind = core.Kind(kind)
	if t.Kind.Validate() != nil {
		return corrupt("kind", kind)
	}

	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return corrupt("date", date)
	}
	t.Date = core.Date{Time: d}

	if category.Valid {
		id := category.Int64
		t.CategoryID = &id
	}
	t.CreatedAt = time.Unix(created, 0).UTC()
	t.UpdatedAt = time.Unix(updated, 0).UTC()
	return t, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
