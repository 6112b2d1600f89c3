package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"ledger/internal/core"
	"ledger/internal/log"
	"ledger/internal/storage"
)

// SummaryService builds the read-only dashboard and list views.
type SummaryService struct {
	store       storage.Store
	now         func() time.Time
	recentLimit int
}

// NewSummaryService uses time.Now when now is nil and core.RecentLimit when
// recentLimit is not positive.
func NewSummaryService(store storage.Store, now func() time.Time, recentLimit int) *SummaryService {
	if now == nil {
		now = time.Now
	}
	if recentLimit <= 0 {
		recentLimit = core.RecentLimit
	}
	return &SummaryService{store: store, now: now, recentLimit: recentLimit}
}

// Dashboard summarizes the current calendar month and lists the most recent
// transactions of all time.
func (s *SummaryService) Dashboard(ctx context.Context, ownerID string) (core.Dashboard, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.Dashboard{}, err
	}

	ref := core.DateOf(s.now())
	from, to := core.MonthRange(ref)

	var (
		month  []core.Transaction
		recent []core.Transaction
		cats   []core.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		month, err = s.store.ListTransactionsBetween(gctx, ownerID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.store.RecentTransactions(gctx, ownerID, s.recentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = s.store.ListCategories(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		logFailure(ctx, log.ComponentSummary, log.OpDashboard, ownerID, err)
		return core.Dashboard{}, fmt.Errorf("load dashboard: %w", err)
	}

	d := core.Dashboard{
		Year:       ref.Year(),
		Month:      ref.Month(),
		Totals:     core.Summarize(month),
		ByCategory: core.CategoryBreakdown(month, cats),
		Recent:     recent,
	}
	if d.ByCategory == nil {
		d.ByCategory = []core.CategoryAmount{}
	}
	if d.Recent == nil {
		d.Recent = []core.Transaction{}
	}

	log.FromContext(ctx).WithComponent(log.ComponentSummary).DebugContext(ctx, "Dashboard built",
		log.FieldOwner, ownerID,
		log.FieldYear, d.Year,
		log.FieldMonth, d.Month,
		log.FieldCount, len(month))
	return d, nil
}

// List returns the owner's transactions narrowed by params, with totals over
// the narrowed set. Malformed params fail the whole request.
func (s *SummaryService) List(ctx context.Context, ownerID string, params core.FilterParams) (core.ListView, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.ListView{}, err
	}

	f, err := core.ParseFilter(params)
	if err != nil {
		logFailure(ctx, log.ComponentSummary, log.OpList, ownerID, err)
		return core.ListView{}, err
	}

	var (
		txs  []core.Transaction
		cats []core.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = s.store.ListTransactions(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = s.store.ListCategories(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		logFailure(ctx, log.ComponentSummary, log.OpList, ownerID, err)
		return core.ListView{}, fmt.Errorf("load transactions: %w", err)
	}

	view := core.ListView{
		Filter:       f,
		Transactions: core.ApplyFilter(txs, f),
		Categories:   cats,
	}
	view.Totals = core.Summarize(view.Transactions)
	if view.Transactions == nil {
		view.Transactions = []core.Transaction{}
	}
	if view.Categories == nil {
		view.Categories = []core.Category{}
	}
	return view, nil
}
