package forecast

import (
	"time"

	"github.com/cashcast/backend/internal/domain/tax"
)

// Snapshot bundles everything one forecast run simulates from. It is
// assembled once by the concurrent loaders and treated as immutable for all
// horizon iterations, so a concurrent write to the source store is never
// observed mid-run.
type Snapshot struct {
	AsOf        time.Time
	Position    CashPosition
	Receivables []OpenInvoice // sorted ascending by due date
	Payables    []OpenInvoice // sorted ascending by due date
	Schedules   []RecurringSchedule
	Patterns    PatternIndex
	Budgets     []BudgetLine
	Obligations []tax.Obligation
}
