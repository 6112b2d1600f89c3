package services

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"ledger/internal/amqp"
	"ledger/internal/core"
	"ledger/internal/storage/memory"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []*amqp.LedgerEvent
	err    error
}

func (p *fakePublisher) PublishEvent(_ context.Context, ev *amqp.LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *fakePublisher) types() []amqp.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]amqp.EventType, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

func fixedClock(y, m, d int) func() time.Time {
	return func() time.Time { return time.Date(y, time.Month(m), d, 15, 30, 0, 0, time.UTC) }
}

type fixture struct {
	store   *memory.Store
	pub     *fakePublisher
	cats    *CategoryService
	txs     *TransactionService
	summary *SummaryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	pub := &fakePublisher{}
	clock := fixedClock(2024, 2, 15)
	return &fixture{
		store:   store,
		pub:     pub,
		cats:    NewCategoryService(store, pub),
		txs:     NewTransactionService(store, pub, clock),
		summary: NewSummaryService(store, clock, 3),
	}
}

func (f *fixture) category(t *testing.T, owner, name string) core.Category {
	t.Helper()
	c, err := f.cats.CreateCategory(context.Background(), owner, name)
	if err != nil {
		t.Fatalf("CreateCategory(%q) error = %v", name, err)
	}
	return c
}

func (f *fixture) tx(t *testing.T, owner string, in TransactionInput) core.Transaction {
	t.Helper()
	tx, err := f.txs.CreateTransaction(context.Background(), owner, in)
	if err != nil {
		t.Fatalf("CreateTransaction(%+v) error = %v", in, err)
	}
	return tx
}

func catID(c core.Category) string {
	return strconv.FormatInt(c.ID, 10)
}
