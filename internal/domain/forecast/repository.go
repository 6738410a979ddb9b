package forecast

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BankAccountRepository reads bank account balances from the external store
type BankAccountRepository interface {
	// SumActiveBalances sums the balances of all active bank accounts
	SumActiveBalances(ctx context.Context) (decimal.Decimal, error)
}

// InvoiceRepository reads open receivables and payables from the external
// store. Implementations must filter to amount_due > 0 and sort ascending by
// due date; that ordering keeps the simulation's iteration deterministic.
type InvoiceRepository interface {
	FindOpen(ctx context.Context, direction Direction) ([]OpenInvoice, error)

	// SumOpenAmount sums amount_due over open invoices of a direction
	SumOpenAmount(ctx context.Context, direction Direction) (decimal.Decimal, error)
}

// RecurringScheduleRepository reads recurring invoice/bill schedules
type RecurringScheduleRepository interface {
	// FindActiveWithin returns schedules whose next occurrence falls within
	// [from, to] and whose end date is null or has not passed
	FindActiveWithin(ctx context.Context, from, to time.Time) ([]RecurringSchedule, error)
}

// PaymentPatternRepository reads per-counterparty payment behavior aggregates
type PaymentPatternRepository interface {
	FindAll(ctx context.Context) ([]PaymentPattern, error)
}

// BudgetRepository reads monthly budget lines
type BudgetRepository interface {
	// FindWithin returns budget lines whose month period overlaps [from, to]
	FindWithin(ctx context.Context, from, to time.Time) ([]BudgetLine, error)
}

// PositionSnapshotRepository is the optional fallback source for the cash
// position when the live store is unreachable
type PositionSnapshotRepository interface {
	// Latest returns the most recent successfully loaded position
	Latest(ctx context.Context) (*CashPosition, error)

	// Save records a successfully loaded position for future fallback
	Save(ctx context.Context, position CashPosition) error
}

// DailyForecastRepository persists simulation output
type DailyForecastRepository interface {
	// UpsertBatch writes all days in one atomic batch keyed by date;
	// rerunning for the same date overwrites rather than duplicates
	UpsertBatch(ctx context.Context, days []DailyForecast) error
}
