package services

import (
	"context"
	"errors"
	"testing"

	"ledger/internal/amqp"
	"ledger/internal/core"
)

func TestTransactionService_CreateDefaults(t *testing.T) {
	f := newFixture(t)

	tx := f.tx(t, "alice", TransactionInput{Amount: "12,50", Description: "  coffee  "})

	if tx.Amount.Cents != 1250 {
		t.Errorf("Amount = %d, want 1250", tx.Amount.Cents)
	}
	if tx.Kind != core.Expense {
		t.Errorf("Kind = %s, want expense", tx.Kind)
	}
	if tx.Date.String() != "2024-02-15" {
		t.Errorf("Date = %s, want today 2024-02-15", tx.Date)
	}
	if tx.Description != "coffee" || tx.CategoryID != nil {
		t.Errorf("unexpected transaction %+v", tx)
	}
	if got := f.pub.types(); len(got) != 1 || got[0] != amqp.TransactionCreated {
		t.Errorf("published %v", got)
	}
}

func TestTransactionService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	bobs := f.category(t, "bob", "Travel")

	tests := []struct {
		name    string
		owner   string
		in      TransactionInput
		wantErr error
	}{
		{"missing owner", "", TransactionInput{Amount: "1", Description: "x"}, core.ErrMissingOwner},
		{"zero amount", "alice", TransactionInput{Amount: "0", Description: "x"}, core.ErrInvalidAmount},
		{"negative amount", "alice", TransactionInput{Amount: "-3", Description: "x"}, core.ErrInvalidAmount},
		{"blank description", "alice", TransactionInput{Amount: "1", Description: "   "}, core.ErrEmptyDescription},
		{"unknown kind", "alice", TransactionInput{Amount: "1", Description: "x", Kind: "transfer"}, core.ErrInvalidKind},
		{"bad date", "alice", TransactionInput{Amount: "1", Description: "x", Date: "2024-13-01"}, core.ErrInvalidDate},
		{"non numeric category", "alice", TransactionInput{Amount: "1", Description: "x", Category: "food"}, core.ErrInvalidCategoryID},
		{"foreign category", "alice", TransactionInput{Amount: "1", Description: "x", Category: catID(bobs)}, core.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.txs.CreateTransaction(context.Background(), tt.owner, tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateTransaction() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if got := f.pub.types(); len(got) != 1 {
		t.Errorf("rejected writes must not publish, got %v", got)
	}
}

func TestTransactionService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	food := f.category(t, "alice", "Food")

	tx := f.tx(t, "alice", TransactionInput{Amount: "40", Description: "dinner", Category: catID(food), Date: "2024-01-10"})

	updated, err := f.txs.UpdateTransaction(ctx, "alice", tx.ID, TransactionInput{Amount: "100", Description: "salary", Kind: "income", Date: "2024-01-05"})
	if err != nil {
		t.Fatalf("UpdateTransaction() error = %v", err)
	}
	if updated.ID != tx.ID || updated.Kind != core.Income || updated.CategoryID != nil || updated.Amount.String() != "100.00" {
		t.Errorf("UpdateTransaction() = %+v", updated)
	}

	got, err := f.txs.GetTransaction(ctx, "alice", tx.ID)
	if err != nil {
		t.Fatalf("GetTransaction() error = %v", err)
	}
	if got.Description != "salary" || got.Date.String() != "2024-01-05" {
		t.Errorf("update not persisted: %+v", got)
	}

	if _, err := f.txs.UpdateTransaction(ctx, "bob", tx.ID, TransactionInput{Amount: "1", Description: "x", Kind: "expense", Date: "2024-01-01"}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("foreign update error = %v, want ErrNotFound", err)
	}
	if _, err := f.txs.GetTransaction(ctx, "bob", tx.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("foreign get error = %v, want ErrNotFound", err)
	}
	if err := f.txs.DeleteTransaction(ctx, "bob", tx.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("foreign delete error = %v, want ErrNotFound", err)
	}

	if err := f.txs.DeleteTransaction(ctx, "alice", tx.ID); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	if _, err := f.txs.GetTransaction(ctx, "alice", tx.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("get after delete error = %v, want ErrNotFound", err)
	}

	want := []amqp.EventType{amqp.CategoryCreated, amqp.TransactionCreated, amqp.TransactionUpdated, amqp.TransactionDeleted}
	got2 := f.pub.types()
	if len(got2) != len(want) {
		t.Fatalf("published %v, want %v", got2, want)
	}
	for i := range want {
		if got2[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got2[i], want[i])
		}
	}
}

func TestTransactionService_UpdateRequiresKindAndDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	salary := f.tx(t, "alice", TransactionInput{Amount: "100", Description: "salary", Kind: "income", Date: "2024-01-05"})

	tests := []struct {
		name    string
		in      TransactionInput
		wantErr error
	}{
		{"blank kind and date", TransactionInput{Amount: "100", Description: "salary (fixed typo)"}, core.ErrInvalidKind},
		{"blank kind", TransactionInput{Amount: "100", Description: "salary (fixed typo)", Date: "2024-01-05"}, core.ErrInvalidKind},
		{"blank date", TransactionInput{Amount: "100", Description: "salary (fixed typo)", Kind: "income"}, core.ErrInvalidDate},
		{"whitespace date", TransactionInput{Amount: "100", Description: "salary (fixed typo)", Kind: "income", Date: "  "}, core.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.txs.UpdateTransaction(ctx, "alice", salary.ID, tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UpdateTransaction() error = %v, want %v", err, tt.wantErr)
			}
			if !core.IsValidation(err) {
				t.Errorf("expected a validation error, got %v", err)
			}

			got, err := f.txs.GetTransaction(ctx, "alice", salary.ID)
			if err != nil {
				t.Fatalf("GetTransaction() error = %v", err)
			}
			if got.Kind != core.Income || got.Date.String() != "2024-01-05" || got.Description != "salary" || got.Amount.Cents != 10000 {
				t.Errorf("rejected update changed the row: %+v", got)
			}
		})
	}

	if got := f.pub.types(); len(got) != 1 {
		t.Errorf("rejected updates must not publish, got %v", got)
	}
}

func TestTransactionService_PublishFailureIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.pub.err = errors.New("connection refused")

	tx := f.tx(t, "alice", TransactionInput{Amount: "5", Description: "x"})
	if _, err := f.txs.GetTransaction(context.Background(), "alice", tx.ID); err != nil {
		t.Fatalf("transaction not stored after publish failure: %v", err)
	}
}

func TestTransactionService_NilPublisher(t *testing.T) {
	f := newFixture(t)
	svc := NewTransactionService(f.store, nil, nil)

	if _, err := svc.CreateTransaction(context.Background(), "alice", TransactionInput{Amount: "5", Description: "x"}); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
}
