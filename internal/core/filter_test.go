package core

import (
	"errors"
	"testing"
)

func ptr[T any](v T) *T { return &v }

// sampleTransactions returns alice's salary, dinner and groceries, newest first.
func sampleTransactions() []Transaction {
	food := int64(1)
	return []Transaction{
		{ID: 3, Amount: Money{Cents: 1550}, Description: "groceries", CategoryID: &food, Date: NewDate(2024, 2, 1), Kind: Expense, OwnerID: "alice"},
		{ID: 2, Amount: Money{Cents: 4000}, Description: "dinner", CategoryID: &food, Date: NewDate(2024, 1, 10), Kind: Expense, OwnerID: "alice"},
		{ID: 1, Amount: Money{Cents: 10000}, Description: "salary", Date: NewDate(2024, 1, 5), Kind: Income, OwnerID: "alice"},
	}
}

func ids(txs []Transaction) []int64 {
	out := make([]int64, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name    string
		params  FilterParams
		wantErr bool
		check   func(t *testing.T, f Filter)
	}{
		{
			name:   "all blank is empty",
			params: FilterParams{Category: " ", Type: "", StartDate: "", EndDate: ""},
			check: func(t *testing.T, f Filter) {
				if !f.IsEmpty() {
					t.Errorf("expected empty filter, got %+v", f)
				}
			},
		},
		{
			name:   "every field",
			params: FilterParams{Category: "4", Type: "income", StartDate: "2024-01-01", EndDate: "2024-01-31"},
			check: func(t *testing.T, f Filter) {
				if f.CategoryID == nil || *f.CategoryID != 4 {
					t.Errorf("CategoryID = %v", f.CategoryID)
				}
				if f.Kind == nil || *f.Kind != Income {
					t.Errorf("Kind = %v", f.Kind)
				}
				if f.StartDate == nil || f.StartDate.String() != "2024-01-01" {
					t.Errorf("StartDate = %v", f.StartDate)
				}
				if f.EndDate == nil || f.EndDate.String() != "2024-01-31" {
					t.Errorf("EndDate = %v", f.EndDate)
				}
			},
		},
		{name: "non numeric category", params: FilterParams{Category: "food"}, wantErr: true},
		{name: "unknown type", params: FilterParams{Type: "transfer"}, wantErr: true},
		{name: "malformed start date", params: FilterParams{StartDate: "2024-02-30"}, wantErr: true},
		{name: "malformed end date", params: FilterParams{EndDate: "31/01/2024"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFilter(tt.params)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFilter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFilterInput) {
					t.Fatalf("expected ErrInvalidFilterInput, got %v", err)
				}
				return
			}
			if tt.check != nil {
				tt.check(t, f)
			}
		})
	}
}

func TestApplyFilter(t *testing.T) {
	txs := sampleTransactions()

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{"empty filter keeps everything", Filter{}, []int64{3, 2, 1}},
		{"start date inclusive", Filter{StartDate: ptr(NewDate(2024, 2, 1))}, []int64{3}},
		{"end date inclusive", Filter{EndDate: ptr(NewDate(2024, 1, 10))}, []int64{2, 1}},
		{"date window", Filter{StartDate: ptr(NewDate(2024, 1, 6)), EndDate: ptr(NewDate(2024, 1, 31))}, []int64{2}},
		{"kind", Filter{Kind: ptr(Expense)}, []int64{3, 2}},
		{"category", Filter{CategoryID: ptr(int64(1))}, []int64{3, 2}},
		{"unknown category is empty", Filter{CategoryID: ptr(int64(99))}, []int64{}},
		{"category never matches uncategorized", Filter{CategoryID: ptr(int64(0))}, []int64{}},
		{"conjunction", Filter{Kind: ptr(Expense), EndDate: ptr(NewDate(2024, 1, 31))}, []int64{2}},
		{"inverted window is empty", Filter{StartDate: ptr(NewDate(2024, 3, 1)), EndDate: ptr(NewDate(2024, 1, 1))}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(ApplyFilter(txs, tt.filter))
			if !equalIDs(got, tt.want) {
				t.Errorf("ApplyFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyFilterIdempotent(t *testing.T) {
	txs := sampleTransactions()
	filters := []Filter{
		{},
		{Kind: ptr(Income)},
		{CategoryID: ptr(int64(1)), StartDate: ptr(NewDate(2024, 1, 1))},
		{EndDate: ptr(NewDate(2024, 1, 5))},
	}
	for i, f := range filters {
		once := ApplyFilter(txs, f)
		twice := ApplyFilter(once, f)
		if !equalIDs(ids(once), ids(twice)) {
			t.Fatalf("case %d: filter not idempotent: %v vs %v", i, ids(once), ids(twice))
		}
	}
}

func TestApplyFilterEmptyIsIdentity(t *testing.T) {
	txs := sampleTransactions()
	got := ApplyFilter(txs, Filter{})
	if &got[0] != &txs[0] {
		t.Fatalf("empty filter should return the input slice")
	}
	if Balance(got) != Balance(txs) {
		t.Fatalf("balance changed under empty filter")
	}
}
