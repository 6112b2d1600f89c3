package core

// RecentLimit is the default size of the dashboard's recent-activity list.
const RecentLimit = 10

// Dashboard is the monthly overview of one owner.
type Dashboard struct {
	Year       int
	Month      int
	Totals     Totals           // current month only
	ByCategory []CategoryAmount // current month, expenses only
	Recent     []Transaction    // all time, newest first
}

// ListView is a filtered transaction list with totals over the filtered rows.
type ListView struct {
	Filter       Filter
	Transactions []Transaction
	Categories   []Category
	Totals       Totals
}
