package services

import (
	"context"
	"errors"
	"strings"

	"ledger/internal/amqp"
	"ledger/internal/core"
	"ledger/internal/log"
)

// EventPublisher is satisfied by *amqp.Client. A nil EventPublisher disables
// event publishing.
type EventPublisher interface {
	PublishEvent(ctx context.Context, ev *amqp.LedgerEvent) error
}

// notify publishes ev after a committed write. Failures are logged and
// swallowed; the store stays the source of truth.
func notify(ctx context.Context, pub EventPublisher, ev *amqp.LedgerEvent) {
	if pub == nil {
		return
	}
	if err := pub.PublishEvent(ctx, ev); err != nil {
		fields := log.NewFields().
			WithOwner(ev.OwnerID).
			WithOperation(log.OpPublish).
			WithError(err, log.ErrorTypeNetwork)
		log.FromContext(ctx).WithComponent(log.ComponentAMQP).WarnContext(ctx, "Failed to publish ledger event",
			append(fields.ToSlice(), log.FieldEventType, ev.Type, "entity_id", ev.EntityID)...)
	}
}

// errorType classifies err for the error_type log field.
func errorType(err error) string {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return log.ErrorTypeNotFound
	case errors.Is(err, core.ErrCorruptRecord):
		return log.ErrorTypeCorrupt
	case core.IsValidation(err):
		return log.ErrorTypeValidation
	default:
		return log.ErrorTypeDatabase
	}
}

// logFailure logs corrupt records at error level and everything else at
// warn; validation and not-found are caller mistakes.
func logFailure(ctx context.Context, component, op, ownerID string, err error) {
	logger := log.FromContext(ctx).WithComponent(component)
	args := log.NewFields().WithOwner(ownerID).WithOperation(op).WithError(err, errorType(err)).ToSlice()
	switch errorType(err) {
	case log.ErrorTypeCorrupt, log.ErrorTypeDatabase:
		logger.ErrorContext(ctx, "Ledger operation failed", args...)
	default:
		logger.WarnContext(ctx, "Ledger operation rejected", args...)
	}
}

func requireOwner(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return core.ErrMissingOwner
	}
	return nil
}
