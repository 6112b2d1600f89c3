package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	TransactionCreated EventType = "transaction.created"
	TransactionUpdated EventType = "transaction.updated"
	TransactionDeleted EventType = "transaction.deleted"
	CategoryCreated    EventType = "category.created"
	CategoryDeleted    EventType = "category.deleted"
)

// LedgerEvent notifies consumers that an owner's ledger changed.
// It carries ids only; consumers read the current state from the store.
type LedgerEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	OwnerID   string    `json:"owner_id"`
	EntityID  int64     `json:"entity_id"`
	Nullified int64     `json:"nullified,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEvent(typ EventType, ownerID string, entityID int64) *LedgerEvent {
	return &LedgerEvent{
		ID:        uuid.NewString(),
		Type:      typ,
		OwnerID:   ownerID,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
