package core

// Totals is the income/expense/balance triple shown above any transaction view.
type Totals struct {
	Income  Money
	Expense Money
	Balance Money
}

// CategoryAmount is one row of the expense breakdown.
type CategoryAmount struct {
	CategoryID int64
	Name       string
	Amount     Money
}

// SumByKind adds up the amounts of the transactions of the given kind.
// Sums are exact integer cents, so the result does not depend on order.
func SumByKind(txs []Transaction, kind Kind) Money {
	var sum Money
	for _, t := range txs {
		if t.Kind == kind {
			sum = sum.Add(t.Amount)
		}
	}
	return sum
}

// Balance is income minus expense; it may be negative.
func Balance(txs []Transaction) Money {
	return SumByKind(txs, Income).Sub(SumByKind(txs, Expense))
}

// Summarize computes all three totals in one pass.
func Summarize(txs []Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Kind {
		case Income:
			t.Income = t.Income.Add(tx.Amount)
		case Expense:
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t
}

// CategoryBreakdown sums expenses per category, in the order of categories.
// Categories whose expense total is zero are left out, whether they have no
// transactions at all or only income.
func CategoryBreakdown(txs []Transaction, categories []Category) []CategoryAmount {
	byCategory := make(map[int64]Money, len(categories))
	for _, t := range txs {
		if t.Kind != Expense || t.CategoryID == nil {
			continue
		}
		byCategory[*t.CategoryID] = byCategory[*t.CategoryID].Add(t.Amount)
	}

	out := make([]CategoryAmount, 0, len(categories))
	for _, c := range categories {
		total := byCategory[c.ID]
		if total.IsZero() {
			continue
		}
		out = append(out, CategoryAmount{
			CategoryID: c.ID,
			Name:       c.Name,
			Amount:     total,
		})
	}
	return out
}
