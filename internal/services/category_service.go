package services

import (
	"context"
	"fmt"
	"strings"

	"ledger/internal/amqp"
	"ledger/internal/core"
	"ledger/internal/log"
	"ledger/internal/storage"
)

// CategoryService owns the category lifecycle.
type CategoryService struct {
	store     storage.CategoryStore
	publisher EventPublisher
}

func NewCategoryService(store storage.CategoryStore, publisher EventPublisher) *CategoryService {
	return &CategoryService{store: store, publisher: publisher}
}

// CreateCategory does not check name uniqueness.
func (s *CategoryService) CreateCategory(ctx context.Context, ownerID, name string) (core.Category, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.Category{}, err
	}

	c := core.Category{Name: strings.TrimSpace(name), OwnerID: ownerID}
	if err := s.store.CreateCategory(ctx, &c); err != nil {
		logFailure(ctx, log.ComponentCategory, log.OpCreate, ownerID, err)
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}

	log.FromContext(ctx).WithComponent(log.ComponentCategory).InfoContext(ctx, "Category created",
		log.FieldOwner, ownerID,
		log.FieldCategoryID, c.ID)

	notify(ctx, s.publisher, amqp.NewLedgerEvent(amqp.CategoryCreated, ownerID, c.ID))
	return c, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, ownerID string) ([]core.Category, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	cats, err := s.store.ListCategories(ctx, ownerID)
	if err != nil {
		logFailure(ctx, log.ComponentCategory, log.OpList, ownerID, err)
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if cats == nil {
		cats = []core.Category{}
	}
	return cats, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, ownerID string, id int64) (core.Category, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.Category{}, err
	}
	c, err := s.store.GetCategory(ctx, ownerID, id)
	if err != nil {
		logFailure(ctx, log.ComponentCategory, log.OpRead, ownerID, err)
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// DeleteCategory makes every transaction in the category uncategorized and
// removes the category. Both happen or neither does. It returns how many
// transactions were detached.
func (s *CategoryService) DeleteCategory(ctx context.Context, ownerID string, id int64) (int64, error) {
	if err := requireOwner(ownerID); err != nil {
		return 0, err
	}

	nullified, err := s.store.DeleteCategory(ctx, ownerID, id)
	if err != nil {
		logFailure(ctx, log.ComponentCategory, log.OpDelete, ownerID, err)
		return 0, fmt.Errorf("delete category: %w", err)
	}

	log.FromContext(ctx).WithComponent(log.ComponentCategory).InfoContext(ctx, "Category deleted",
		log.FieldOwner, ownerID,
		log.FieldCategoryID, id,
		log.FieldNullified, nullified)

	ev := amqp.NewLedgerEvent(amqp.CategoryDeleted, ownerID, id)
	ev.Nullified = nullified
	notify(ctx, s.publisher, ev)
	return nullified, nil
}
