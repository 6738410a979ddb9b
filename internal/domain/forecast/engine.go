package forecast

import (
	"fmt"
	"time"

	"github.com/cashcast/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Engine is the forecasting kernel. It walks the horizon one day at a time,
// computing inflows and outflows per category, scenario bounds, alerts and a
// confidence score, carrying the closing balance into the next day.
//
// Run performs no I/O and is pure: two runs over an identical snapshot
// produce identical output. The day loop is strictly sequential because each
// day's opening balance is the previous day's closing balance; it must not
// be parallelized across days.
type Engine struct {
	cfg EngineConfig
}

// NewEngine creates an Engine with an immutable configuration
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Run simulates the horizon and returns one DailyForecast per day, dates
// strictly increasing by one calendar day starting at the snapshot's AsOf
// day. A horizon below one day is rejected before any work.
func (e *Engine) Run(snapshot Snapshot, horizonDays int) ([]DailyForecast, error) {
	if horizonDays < 1 {
		return nil, shared.ErrInvalidHorizon
	}

	today := DayOf(snapshot.AsOf)
	monthlyBudgets := MonthlyExpenseBudgets(snapshot.Budgets)
	balance := snapshot.Position.Cash

	days := make([]DailyForecast, 0, horizonDays)
	for day := 0; day < horizonDays; day++ {
		date := today.AddDate(0, 0, day)
		df := e.simulateDay(snapshot, monthlyBudgets, date, balance)
		if day == 0 {
			if alert := e.overdueAlert(snapshot.Receivables, today); alert != nil {
				df.Alerts = append(df.Alerts, *alert)
			}
		}
		balance = df.ClosingBalance
		days = append(days, df)
	}
	return days, nil
}

// simulateDay computes one day's flows, balance, scenario bounds, confidence
// and alerts given the balance carried in from the previous day.
func (e *Engine) simulateDay(snapshot Snapshot, monthlyBudgets map[MonthKey]decimal.Decimal, date time.Time, openingBalance decimal.Decimal) DailyForecast {
	invoiceInflow := e.invoiceFlow(snapshot.Receivables, snapshot.Patterns, date)
	billOutflow := e.invoiceFlow(snapshot.Payables, snapshot.Patterns, date)
	recurringInflow, recurringOutflow := e.recurringFlow(snapshot.Schedules, date)
	taxOutflow := e.taxFlow(snapshot, date)
	inferredOutflow := e.inferredPatternFlow(date)
	budgetOutflow := e.budgetFlow(monthlyBudgets, date, billOutflow.Add(recurringOutflow).Add(taxOutflow).Add(inferredOutflow))

	inflows := Inflows{
		FromInvoices:  invoiceInflow,
		FromRecurring: recurringInflow,
		FromOther:     decimal.Zero,
		Total:         invoiceInflow.Add(recurringInflow),
	}
	outflows := Outflows{
		ToBills:            billOutflow,
		ToRecurring:        recurringOutflow,
		ToTax:              taxOutflow,
		ToInferredPatterns: inferredOutflow,
		ToBudget:           budgetOutflow,
		Total:              billOutflow.Add(recurringOutflow).Add(taxOutflow).Add(inferredOutflow).Add(budgetOutflow),
	}

	closingBalance := openingBalance.Add(inflows.Total).Sub(outflows.Total)

	df := DailyForecast{
		Date:           date,
		OpeningBalance: openingBalance,
		Inflows:        inflows,
		Outflows:       outflows,
		ClosingBalance: closingBalance,
		Scenarios: Scenarios{
			BestCase: openingBalance.
				Add(inflows.Total.Mul(e.cfg.Scenarios.BestCaseInflow)).
				Sub(outflows.Total.Mul(e.cfg.Scenarios.BestCaseOutflow)),
			WorstCase: openingBalance.
				Add(inflows.Total.Mul(e.cfg.Scenarios.WorstCaseInflow)).
				Sub(outflows.Total.Mul(e.cfg.Scenarios.WorstCaseOutflow)),
		},
		ConfidenceLevel: e.confidenceLevel(inflows, outflows),
		Alerts:          e.dayAlerts(closingBalance, outflows),
	}
	return df
}

// invoiceFlow sums invoices whose expected payment date is the given day.
// Iteration follows the loader's ascending due-date sort; order affects only
// intermediate iteration, never the summed total.
func (e *Engine) invoiceFlow(invoices []OpenInvoice, patterns PatternIndex, date time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		pattern := patterns.Lookup(inv.CounterpartyID, inv.Direction.Role())
		if SameDay(inv.ExpectedPaymentDate(pattern), date) {
			total = total.Add(inv.AmountDue)
		}
	}
	return total
}

// recurringFlow sums recurring schedules occurring on the day, split by direction
func (e *Engine) recurringFlow(schedules []RecurringSchedule, date time.Time) (inflow, outflow decimal.Decimal) {
	inflow, outflow = decimal.Zero, decimal.Zero
	for _, s := range schedules {
		if !s.OccursOn(date) {
			continue
		}
		if s.Direction == DirectionReceivable {
			inflow = inflow.Add(s.Amount)
		} else {
			outflow = outflow.Add(s.Amount)
		}
	}
	return inflow, outflow
}

// taxFlow sums tax obligations due on the day
func (e *Engine) taxFlow(snapshot Snapshot, date time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, o := range snapshot.Obligations {
		if o.IsDueOn(date) {
			total = total.Add(o.Amount)
		}
	}
	return total
}

// inferredPatternFlow is the extension point for recurring-but-unscheduled
// expense detection. No pattern model is implemented yet, so it contributes
// zero to every day; this is a known gap, not a finished feature. A future
// model must return the expected outflow for the given day and will be
// weighted with the InferredPattern confidence constant.
func (e *Engine) inferredPatternFlow(_ time.Time) decimal.Decimal {
	return decimal.Zero
}

// budgetFlow allocates the month's expense budget evenly across its days,
// nets out outflows already accounted for that day, floors at zero and
// weights by the budgeted confidence factor.
func (e *Engine) budgetFlow(monthlyBudgets map[MonthKey]decimal.Decimal, date time.Time, accountedOutflow decimal.Decimal) decimal.Decimal {
	monthTotal, ok := monthlyBudgets[MonthKeyOf(date)]
	if !ok || !monthTotal.IsPositive() {
		return decimal.Zero
	}
	daysInMonth := time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	daily := monthTotal.Div(decimal.NewFromInt(int64(daysInMonth)))
	remainder := daily.Sub(accountedOutflow)
	if remainder.IsNegative() {
		return decimal.Zero
	}
	return remainder.Mul(decimal.NewFromFloat(e.cfg.Confidence.Budgeted))
}

// confidenceLevel is the volume-weighted average of the per-category
// confidence constants, weighted by each category's monetary contribution
// that day. A day with no flow at all has nothing to be uncertain about and
// scores 1.0.
func (e *Engine) confidenceLevel(inflows Inflows, outflows Outflows) float64 {
	type contribution struct {
		volume decimal.Decimal
		weight float64
	}
	contributions := []contribution{
		{inflows.FromInvoices.Add(outflows.ToBills), e.cfg.Confidence.ConfirmedInvoice},
		{inflows.FromRecurring.Add(outflows.ToRecurring).Add(outflows.ToTax), e.cfg.Confidence.RepeatingSchedule},
		{outflows.ToInferredPatterns, e.cfg.Confidence.InferredPattern},
		{outflows.ToBudget, e.cfg.Confidence.Budgeted},
	}

	totalVolume := 0.0
	weighted := 0.0
	for _, c := range contributions {
		volume := c.volume.InexactFloat64()
		totalVolume += volume
		weighted += volume * c.weight
	}
	if totalVolume == 0 {
		return 1.0
	}
	return weighted / totalVolume
}

// dayAlerts evaluates the day's closing balance and outflows against the
// configured thresholds
func (e *Engine) dayAlerts(closingBalance decimal.Decimal, outflows Outflows) []Alert {
	var alerts []Alert

	if closingBalance.LessThan(e.cfg.Alerts.LowBalance) {
		severity := SeverityWarning
		if closingBalance.LessThan(e.cfg.Alerts.CriticalBalance) {
			severity = SeverityCritical
		}
		alerts = append(alerts, Alert{
			Kind:     AlertLowBalance,
			Severity: severity,
			Message:  fmt.Sprintf("Projected balance %s falls below %s", closingBalance.StringFixed(2), e.cfg.Alerts.LowBalance.StringFixed(2)),
			Amount:   ptrDecimal(closingBalance),
		})
	}

	if outflows.Total.GreaterThan(e.cfg.Alerts.LargePayment) {
		alerts = append(alerts, Alert{
			Kind:     AlertLargePayment,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("Large outflow of %s projected", outflows.Total.StringFixed(2)),
			Amount:   ptrDecimal(outflows.Total),
		})
	}

	if outflows.ToTax.IsPositive() {
		alerts = append(alerts, Alert{
			Kind:     AlertTaxDue,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Tax payment of %s due", outflows.ToTax.StringFixed(2)),
			Amount:   ptrDecimal(outflows.ToTax),
		})
	}

	return alerts
}

// overdueAlert aggregates receivables more than the grace period past due
// into a single day-zero alert reporting their count and total amount.
func (e *Engine) overdueAlert(receivables []OpenInvoice, today time.Time) *Alert {
	count := 0
	total := decimal.Zero
	for _, inv := range receivables {
		if inv.OverdueDays(today) > e.cfg.Alerts.OverdueGraceDays {
			count++
			total = total.Add(inv.AmountDue)
		}
	}
	if count == 0 {
		return nil
	}
	return &Alert{
		Kind:     AlertOverdueInvoice,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("%d invoice(s) more than %d days overdue totalling %s", count, e.cfg.Alerts.OverdueGraceDays, total.StringFixed(2)),
		Amount:   ptrDecimal(total),
	}
}

func ptrDecimal(d decimal.Decimal) *decimal.Decimal {
	return &d
}
