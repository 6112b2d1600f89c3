package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ledger/internal/amqp"
	"ledger/internal/core"
	"ledger/internal/log"
	"ledger/internal/storage"
)

// TransactionInput holds raw user-entered values. On create a blank Date
// means today and a blank Kind means expense; on update both are required.
// A blank Category leaves the transaction uncategorized.
type TransactionInput struct {
	Amount      string
	Description string
	Category    string
	Date        string
	Kind        string
}

type TransactionService struct {
	store     storage.TransactionStore
	publisher EventPublisher
	now       func() time.Time
}

// NewTransactionService uses time.Now when now is nil.
func NewTransactionService(store storage.TransactionStore, publisher EventPublisher, now func() time.Time) *TransactionService {
	if now == nil {
		now = time.Now
	}
	return &TransactionService{store: store, publisher: publisher, now: now}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, ownerID string, in TransactionInput) (core.Transaction, error) {
	t, err := s.parseInput(ownerID, in, true)
	if err != nil {
		logFailure(ctx, log.ComponentTransaction, log.OpCreate, ownerID, err)
		return core.Transaction{}, err
	}

	if err := s.store.CreateTransaction(ctx, &t); err != nil {
		logFailure(ctx, log.ComponentTransaction, log.OpCreate, ownerID, err)
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	s.logSaved(ctx, "Transaction created", t)
	notify(ctx, s.publisher, amqp.NewLedgerEvent(amqp.TransactionCreated, ownerID, t.ID))
	return t, nil
}

// UpdateTransaction replaces every field of transaction id with in. Kind and
// Date must be given; a blank one fails with ErrInvalidKind or ErrInvalidDate.
func (s *TransactionService) UpdateTransaction(ctx context.Context, ownerID string, id int64, in TransactionInput) (core.Transaction, error) {
	t, err := s.parseInput(ownerID, in, false)
	if err != nil {
		logFailure(ctx, log.ComponentTransaction, log.OpUpdate, ownerID, err)
		return core.Transaction{}, err
	}
	t.ID = id

	if err := s.store.UpdateTransaction(ctx, &t); err != nil {
		logFailure(ctx, log.ComponentTransaction, log.OpUpdate, ownerID, err)
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	s.logSaved(ctx, "Transaction updated", t)
	notify(ctx, s.publisher, amqp.NewLedgerEvent(amqp.TransactionUpdated, ownerID, t.ID))
	return t, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, ownerID string, id int64) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, ownerID, id); err != nil {
		logFailure(ctx, log.ComponentTransaction, log.OpDelete, ownerID, err)
		return fmt.Errorf("delete transaction: %w", err)
	}

	log.FromContext(ctx).WithComponent(log.ComponentTransaction).InfoContext(ctx, "Transaction deleted",
		log.FieldOwner, ownerID,
		log.FieldTransactionID, id)
	notify(ctx, s.publisher, amqp.NewLedgerEvent(amqp.TransactionDeleted, ownerID, id))
	return nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, ownerID string, id int64) (core.Transaction, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.Transaction{}, err
	}
	t, err := s.store.GetTransaction(ctx, ownerID, id)
	if err != nil {
		logFailure(ctx, log.ComponentTransaction, log.OpRead, ownerID, err)
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// parseInput fills a blank Kind and Date from defaults only when withDefaults
// is set.
func (s *TransactionService) parseInput(ownerID string, in TransactionInput, withDefaults bool) (core.Transaction, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.Transaction{}, err
	}
	if !withDefaults {
		if strings.TrimSpace(in.Kind) == "" {
			return core.Transaction{}, fmt.Errorf("%w: type is required", core.ErrInvalidKind)
		}
		if strings.TrimSpace(in.Date) == "" {
			return core.Transaction{}, fmt.Errorf("%w: date is required", core.ErrInvalidDate)
		}
	}

	amount, err := core.ParseMoney(in.Amount)
	if err != nil {
		return core.Transaction{}, err
	}

	kind := core.Expense
	if strings.TrimSpace(in.Kind) != "" {
		if kind, err = core.ParseKind(in.Kind); err != nil {
			return core.Transaction{}, err
		}
	}

	date := core.DateOf(s.now())
	if strings.TrimSpace(in.Date) != "" {
		if date, err = core.ParseDate(in.Date); err != nil {
			return core.Transaction{}, err
		}
	}

	var categoryID *int64
	if raw := strings.TrimSpace(in.Category); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("%w: %q", core.ErrInvalidCategoryID, in.Category)
		}
		categoryID = &id
	}

	t := core.Transaction{
		Amount:      amount,
		Description: strings.TrimSpace(in.Description),
		CategoryID:  categoryID,
		Date:        date,
		Kind:        kind,
		OwnerID:     ownerID,
	}
	return t, t.Validate()
}

func (s *TransactionService) logSaved(ctx context.Context, msg string, t core.Transaction) {
	fields := log.NewFields().
		WithOwner(t.OwnerID).
		WithTransaction(t.ID, t.Kind.String(), t.Amount.Cents, t.Date.String())
	if t.CategoryID != nil {
		fields.WithCategory(*t.CategoryID)
	}
	log.FromContext(ctx).WithComponent(log.ComponentTransaction).InfoContext(ctx, msg, fields.ToSlice()...)
}
