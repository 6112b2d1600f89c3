// Package memory is a process-local storage.Store for development and tests.
package memory

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"ledger/internal/core"
	"ledger/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	mu     sync.RWMutex
	now    func() time.Time
	nextID int64
	cats   []core.Category
	txs    []core.Transaction
}

func New() *Store {
	return &Store{now: time.Now}
}

// NewFromFiles seeds owner's categories from base/seed_categories.txt, one
// name per line. Blank lines and #-comments are skipped, duplicates dropped.
func NewFromFiles(base, owner string) (*Store, error) {
	s := New()
	if owner == "" {
		return s, nil
	}
	for _, name := range readLines(filepath.Join(base, "seed_categories.txt")) {
		c := core.Category{Name: name, OwnerID: owner}
		if err := s.CreateCategory(context.Background(), &c); err != nil {
			return nil, fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return s, nil
}

func (s *Store) Close() error { return nil }

func (s *Store) CreateCategory(_ context.Context, c *core.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	s.cats = append(s.cats, *c)
	return nil
}

func (s *Store) ListCategories(_ context.Context, ownerID string) ([]core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Category
	for _, c := range s.cats {
		if c.OwnerID == ownerID && !c.IsShared() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) GetCategory(_ context.Context, ownerID string, id int64) (core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.categoryIndex(ownerID, id)
	if i < 0 {
		return core.Category{}, fmt.Errorf("category %d: %w", id, core.ErrNotFound)
	}
	return s.cats[i], nil
}

// DeleteCategory holds the write lock across nullify and delete, so readers
// never observe a transaction pointing at a removed category.
func (s *Store) DeleteCategory(_ context.Context, ownerID string, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.categoryIndex(ownerID, id)
	if i < 0 {
		return 0, fmt.Errorf("category %d: %w", id, core.ErrNotFound)
	}

	var nullified int64
	now := s.now().UTC()
	for j := range s.txs {
		if s.txs[j].HasCategory(id) {
			s.txs[j].CategoryID = nil
			s.txs[j].UpdatedAt = now
			nullified++
		}
	}
	s.cats = append(s.cats[:i], s.cats[i+1:]...)
	return nullified, nil
}

func (s *Store) CreateTransaction(_ context.Context, t *core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.CategoryID != nil && s.categoryIndex(t.OwnerID, *t.CategoryID) < 0 {
		return fmt.Errorf("category %d: %w", *t.CategoryID, core.ErrNotFound)
	}
	now := s.now().UTC().Truncate(time.Second)
	s.nextID++
	t.ID = s.nextID
	t.CreatedAt = now
	t.UpdatedAt = now
	s.txs = append(s.txs, clone(*t))
	return nil
}

func (s *Store) GetTransaction(_ context.Context, ownerID string, id int64) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.transactionIndex(ownerID, id)
	if i < 0 {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}
	return clone(s.txs[i]), nil
}

func (s *Store) UpdateTransaction(_ context.Context, t *core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.transactionIndex(t.OwnerID, t.ID)
	if i < 0 {
		return fmt.Errorf("transaction %d: %w", t.ID, core.ErrNotFound)
	}
	if t.CategoryID != nil && s.categoryIndex(t.OwnerID, *t.CategoryID) < 0 {
		return fmt.Errorf("category %d: %w", *t.CategoryID, core.ErrNotFound)
	}
	t.CreatedAt = s.txs[i].CreatedAt
	t.UpdatedAt = s.now().UTC().Truncate(time.Second)
	s.txs[i] = clone(*t)
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, ownerID string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.transactionIndex(ownerID, id)
	if i < 0 {
		return fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}
	s.txs = append(s.txs[:i], s.txs[i+1:]...)
	return nil
}

func (s *Store) ListTransactions(_ context.Context, ownerID string) ([]core.Transaction, error) {
	return s.selectTransactions(ownerID, func(core.Transaction) bool { return true }, 0), nil
}

func (s *Store) ListTransactionsBetween(_ context.Context, ownerID string, from, to core.Date) ([]core.Transaction, error) {
	return s.selectTransactions(ownerID, func(t core.Transaction) bool {
		return !t.Date.Before(from.Time) && !t.Date.After(to.Time)
	}, 0), nil
}

func (s *Store) RecentTransactions(_ context.Context, ownerID string, limit int) ([]core.Transaction, error) {
	if limit <= 0 {
		return nil, nil
	}
	return s.selectTransactions(ownerID, func(core.Transaction) bool { return true }, limit), nil
}

// selectTransactions returns copies in date desc, id desc order; limit 0
// means no limit.
func (s *Store) selectTransactions(ownerID string, keep func(core.Transaction) bool, limit int) []core.Transaction {
	s.mu.RLock()
	var out []core.Transaction
	for _, t := range s.txs {
		if t.OwnerID == ownerID && keep(t) {
			out = append(out, clone(t))
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *Store) categoryIndex(ownerID string, id int64) int {
	if ownerID == "" {
		return -1
	}
	for i, c := range s.cats {
		if c.ID == id && c.OwnerID == ownerID {
			return i
		}
	}
	return -1
}

func (s *Store) transactionIndex(ownerID string, id int64) int {
	for i, t := range s.txs {
		if t.ID == id && t.OwnerID == ownerID {
			return i
		}
	}
	return -1
}

// clone detaches the category pointer from the caller's copy.
func clone(t core.Transaction) core.Transaction {
	if t.CategoryID != nil {
		id := *t.CategoryID
		t.CategoryID = &id
	}
	return t
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	seen := map[string]struct{}{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
