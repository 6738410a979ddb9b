package tax

import (
	"fmt"
	"time"

	"github.com/cashcast/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// trailingEstimateMonths is the lookback used for VAT and payroll heuristics
const trailingEstimateMonths = 3

// corporateLookaheadDays bounds how far ahead fiscal year ends are considered
const corporateLookaheadDays = 365

// Calculator derives upcoming tax obligations from an organization's tax
// profile and its recent ledger activity. It is pure: given the same profile,
// rate table, reference date and activity window it returns the same
// obligations, so each rule is independently testable.
type Calculator struct {
	profile Profile
	rates   RateTable
}

// NewCalculator creates a Calculator bound to an immutable profile and rate table
func NewCalculator(profile Profile, rates RateTable) *Calculator {
	return &Calculator{profile: profile, rates: rates}
}

// UpcomingObligations returns the VAT, payroll and corporate tax obligations
// falling due within the horizon, each tagged with the precision of its
// amount. asOf is the reference "today"; the activity window should cover at
// least the trailing twelve months before it.
func (c *Calculator) UpcomingObligations(asOf time.Time, horizonDays int, activity LedgerActivity) []Obligation {
	today := DayOf(asOf)
	obligations := make([]Obligation, 0, 8)
	obligations = append(obligations, c.vatObligations(today, horizonDays, activity)...)
	obligations = append(obligations, c.payrollObligations(today, horizonDays, activity)...)
	obligations = append(obligations, c.corporateObligations(today, activity)...)
	return obligations
}

// vatObligations emits one obligation per VAT period ending inside the
// horizon. Due date is period end + 1 calendar month + 7 days.
func (c *Calculator) vatObligations(today time.Time, horizonDays int, activity LedgerActivity) []Obligation {
	if !c.profile.VATRegistered {
		return nil
	}

	annual := c.annualVATLiability(today, activity)
	perPeriod := annual.Amount().Div(decimal.NewFromInt(int64(c.profile.VATCadence.PeriodsPerYear())))
	if !perPeriod.IsPositive() {
		return nil
	}

	horizonEnd := today.AddDate(0, 0, horizonDays)
	periodMonths := c.profile.VATCadence.PeriodMonths()

	var obligations []Obligation
	for _, periodEnd := range monthEndsBetween(today, horizonEnd) {
		if c.profile.VATCadence == VATCadenceQuarterly && int(periodEnd.Month())%3 != 0 {
			continue
		}
		periodStart := startOfMonth(addMonthsClamped(periodEnd, -(periodMonths - 1)))
		dueDate := addMonthsClamped(periodEnd, 1).AddDate(0, 0, 7)
		obligations = append(obligations, Obligation{
			Kind:        KindVAT,
			DueDate:     dueDate,
			Amount:      perPeriod,
			PeriodStart: &periodStart,
			PeriodEnd:   ptrTime(periodEnd),
			Reference:   fmt.Sprintf("VAT return %s", periodEnd.Format("2006-01")),
			Status:      StatusPending,
			Precision:   annual.Precision(),
		})
	}
	return obligations
}

// annualVATLiability prefers the designated liability account balance and
// falls back to the fallback rate applied to trailing sales receipts,
// averaged monthly and annualized.
func (c *Calculator) annualVATLiability(today time.Time, activity LedgerActivity) valueobject.Estimate {
	if balance, ok := activity.AccountBalance(c.profile.VATLiabilityAccountCode); ok && balance.IsPositive() {
		return valueobject.PreciseEstimate(balance)
	}

	from := addMonthsClamped(today, -trailingEstimateMonths)
	receipts := activity.ReceiptsBetween(from, today)
	monthlyReceipts := receipts.Div(decimal.NewFromInt(trailingEstimateMonths))
	annual := monthlyReceipts.Mul(c.rates.VATFallbackRate).Mul(decimal.NewFromInt(12))
	return valueobject.HeuristicEstimate(annual)
}

// payrollObligations emits one obligation per month boundary in the horizon,
// due on the configured day of the following month.
func (c *Calculator) payrollObligations(today time.Time, horizonDays int, activity LedgerActivity) []Obligation {
	if !c.profile.HasPayroll {
		return nil
	}

	monthly := c.monthlyPayrollLiability(today, activity)
	if !monthly.Amount().IsPositive() {
		return nil
	}

	horizonEnd := today.AddDate(0, 0, horizonDays)

	var obligations []Obligation
	for _, monthEnd := range monthEndsBetween(today, horizonEnd) {
		periodStart := startOfMonth(monthEnd)
		dueDate := time.Date(monthEnd.Year(), monthEnd.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 1, c.rates.PayrollDueDay-1)
		obligations = append(obligations, Obligation{
			Kind:        KindPayroll,
			DueDate:     dueDate,
			Amount:      monthly.Amount(),
			PeriodStart: &periodStart,
			PeriodEnd:   ptrTime(monthEnd),
			Reference:   fmt.Sprintf("Payroll tax %s", monthEnd.Format("2006-01")),
			Status:      StatusPending,
			Precision:   monthly.Precision(),
		})
	}
	return obligations
}

// monthlyPayrollLiability prefers the designated payroll liability account
// balance and falls back to payroll-keyword transaction volume multiplied by
// the flat estimation factor.
func (c *Calculator) monthlyPayrollLiability(today time.Time, activity LedgerActivity) valueobject.Estimate {
	if balance, ok := activity.AccountBalance(c.profile.PayrollLiabilityAccountCode); ok && balance.IsPositive() {
		return valueobject.PreciseEstimate(balance)
	}

	from := addMonthsClamped(today, -trailingEstimateMonths)
	payrollSpend := activity.KeywordPaymentsBetween(from, today, c.rates.PayrollKeywords)
	monthlySpend := payrollSpend.Div(decimal.NewFromInt(trailingEstimateMonths))
	return valueobject.HeuristicEstimate(monthlySpend.Mul(c.rates.PayrollEstimationFactor))
}

// corporateObligations emits an obligation for each fiscal year end within
// the next year, due 9 months and 1 day after the year end. The rate is a
// two-bracket function of trailing-12-month profit.
func (c *Calculator) corporateObligations(today time.Time, activity LedgerActivity) []Obligation {
	profit := c.trailingProfit(today, activity)
	if !profit.IsPositive() {
		return nil
	}

	rate := c.rates.SmallProfitsRate
	if profit.GreaterThanOrEqual(c.rates.MainRateThreshold) {
		rate = c.rates.MainRate
	}
	amount := profit.Mul(rate)

	lookaheadEnd := today.AddDate(0, 0, corporateLookaheadDays)

	var obligations []Obligation
	for _, yearEnd := range fiscalYearEndsBetween(today, lookaheadEnd, c.profile.FiscalYearEndMonth, c.profile.FiscalYearEndDay) {
		periodStart := addMonthsClamped(yearEnd, -11)
		periodStart = startOfMonth(periodStart)
		dueDate := addMonthsClamped(yearEnd, 9).AddDate(0, 0, 1)
		obligations = append(obligations, Obligation{
			Kind:        KindCorporate,
			DueDate:     dueDate,
			Amount:      amount,
			PeriodStart: &periodStart,
			PeriodEnd:   ptrTime(yearEnd),
			Reference:   fmt.Sprintf("Corporation tax FY %s", yearEnd.Format("2006")),
			Status:      StatusPending,
			Precision:   valueobject.PrecisionEstimated,
		})
	}
	return obligations
}

// trailingProfit estimates trailing-12-month profit as receipts minus
// payments, floored at zero.
func (c *Calculator) trailingProfit(today time.Time, activity LedgerActivity) decimal.Decimal {
	from := addMonthsClamped(today, -12)
	profit := activity.ReceiptsBetween(from, today).Sub(activity.PaymentsBetween(from, today))
	if profit.IsNegative() {
		return decimal.Zero
	}
	return profit
}

// monthEndsBetween returns the last day of every month falling within
// [from, to], in ascending order.
func monthEndsBetween(from, to time.Time) []time.Time {
	var ends []time.Time
	cursor := endOfMonth(from)
	for !cursor.After(to) {
		if !cursor.Before(from) {
			ends = append(ends, cursor)
		}
		cursor = endOfMonth(cursor.AddDate(0, 0, 1))
	}
	return ends
}

// fiscalYearEndsBetween returns fiscal year-end dates within [from, to]
func fiscalYearEndsBetween(from, to time.Time, month time.Month, day int) []time.Time {
	var ends []time.Time
	for year := from.Year(); year <= to.Year(); year++ {
		yearEnd := clampedDate(year, month, day)
		if !yearEnd.Before(from) && !yearEnd.After(to) {
			ends = append(ends, yearEnd)
		}
	}
	return ends
}

// addMonthsClamped adds months to a date, clamping to the last day of the
// target month instead of letting Go's AddDate normalize past it. March 31
// plus one month is April 30, not May 1.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, time.UTC)
}

// clampedDate builds a date, clamping the day to the month's length
func clampedDate(year int, month time.Month, day int) time.Time {
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the number of days in the given month
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func endOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
