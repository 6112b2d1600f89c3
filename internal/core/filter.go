package core

import (
	"fmt"
	"strconv"
	"strings"
)

// FilterParams holds the raw query values of a list request. Blank values
// are treated as absent.
type FilterParams struct {
	Category  string
	Type      string
	StartDate string
	EndDate   string
}

// Filter is a conjunction of optional predicates over transactions.
// A nil field imposes no constraint.
type Filter struct {
	CategoryID *int64
	Kind       *Kind
	StartDate  *Date // inclusive
	EndDate    *Date // inclusive
}

// ParseFilter validates every provided parameter. Any malformed value
// rejects the whole filter with ErrInvalidFilterInput.
func ParseFilter(p FilterParams) (Filter, error) {
	var f Filter

	if v := strings.TrimSpace(p.Category); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: category %q", ErrInvalidFilterInput, p.Category)
		}
		f.CategoryID = &id
	}
	if v := strings.TrimSpace(p.Type); v != "" {
		k, err := ParseKind(v)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: type %q", ErrInvalidFilterInput, p.Type)
		}
		f.Kind = &k
	}
	if v := strings.TrimSpace(p.StartDate); v != "" {
		d, err := ParseDate(v)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: start_date %q", ErrInvalidFilterInput, p.StartDate)
		}
		f.StartDate = &d
	}
	if v := strings.TrimSpace(p.EndDate); v != "" {
		d, err := ParseDate(v)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: end_date %q", ErrInvalidFilterInput, p.EndDate)
		}
		f.EndDate = &d
	}

	return f, nil
}

// IsEmpty reports whether no predicate is set.
func (f Filter) IsEmpty() bool {
	return f.CategoryID == nil && f.Kind == nil && f.StartDate == nil && f.EndDate == nil
}

// Matches reports whether t satisfies every provided predicate.
func (f Filter) Matches(t Transaction) bool {
	if f.CategoryID != nil && !t.HasCategory(*f.CategoryID) {
		return false
	}
	if f.Kind != nil && t.Kind != *f.Kind {
		return false
	}
	if f.StartDate != nil && t.Date.Before(f.StartDate.Time) {
		return false
	}
	if f.EndDate != nil && t.Date.After(f.EndDate.Time) {
		return false
	}
	return true
}

// ApplyFilter returns the transactions matching f in their original order.
// An empty filter returns txs itself.
func ApplyFilter(txs []Transaction, f Filter) []Transaction {
	if f.IsEmpty() {
		return txs
	}
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
