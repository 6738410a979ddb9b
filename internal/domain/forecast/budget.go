package forecast

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetCategory classifies a budget line as revenue or expense
type BudgetCategory string

const (
	BudgetRevenue BudgetCategory = "REVENUE"
	BudgetExpense BudgetCategory = "EXPENSE"
)

// IsValid checks if the category is a valid BudgetCategory
func (c BudgetCategory) IsValid() bool {
	return c == BudgetRevenue || c == BudgetExpense
}

// String returns the string representation of BudgetCategory
func (c BudgetCategory) String() string {
	return string(c)
}

// BudgetLine is one account's budgeted amount for one month
type BudgetLine struct {
	AccountCode    string
	Category       BudgetCategory
	MonthPeriod    time.Time // first day of the budgeted month
	BudgetedAmount decimal.Decimal
}

// MonthKey identifies a calendar month
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthKeyOf returns the month key of a date
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// MonthlyExpenseBudgets aggregates EXPENSE budget lines per month. The
// simulation spreads each month's total evenly across its days.
func MonthlyExpenseBudgets(lines []BudgetLine) map[MonthKey]decimal.Decimal {
	totals := make(map[MonthKey]decimal.Decimal)
	for _, line := range lines {
		if line.Category != BudgetExpense {
			continue
		}
		key := MonthKeyOf(line.MonthPeriod)
		totals[key] = totals[key].Add(line.BudgetedAmount)
	}
	return totals
}
