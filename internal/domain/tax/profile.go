package tax

import (
	"time"

	"github.com/shopspring/decimal"
)

// VATCadence represents how often the organization files VAT returns
type VATCadence string

const (
	VATCadenceMonthly   VATCadence = "MONTHLY"
	VATCadenceQuarterly VATCadence = "QUARTERLY"
)

// IsValid checks if the cadence is a valid VATCadence
func (c VATCadence) IsValid() bool {
	return c == VATCadenceMonthly || c == VATCadenceQuarterly
}

// String returns the string representation of VATCadence
func (c VATCadence) String() string {
	return string(c)
}

// PeriodsPerYear returns the number of filing periods in a year
func (c VATCadence) PeriodsPerYear() int {
	if c == VATCadenceMonthly {
		return 12
	}
	return 4
}

// PeriodMonths returns the length of one filing period in months
func (c VATCadence) PeriodMonths() int {
	if c == VATCadenceMonthly {
		return 1
	}
	return 3
}

// Profile holds an organization's tax registration parameters. It is loaded
// once per forecast run and never mutated by the calculator.
type Profile struct {
	VATRegistered bool
	VATCadence    VATCadence
	// FiscalYearEndMonth and FiscalYearEndDay define the accounting year end,
	// e.g. month=3 day=31 for a 31 March year end.
	FiscalYearEndMonth time.Month
	FiscalYearEndDay   int
	// Ledger account codes designated for precise liability lookups. Empty
	// codes force the heuristic estimation path.
	VATLiabilityAccountCode     string
	PayrollLiabilityAccountCode string
	// HasPayroll indicates the organization runs a payroll scheme at all
	HasPayroll bool
}

// RateTable holds the jurisdiction's rates and thresholds. It is an immutable
// configuration object passed to the calculator at construction time so the
// calculator can be parameterized for other jurisdictions without global state.
type RateTable struct {
	// VATFallbackRate is applied to trailing sales receipts when no VAT
	// liability ledger account is designated.
	VATFallbackRate decimal.Decimal
	// PayrollEstimationFactor is applied to payroll-keyword transaction
	// volume when no payroll liability account is designated.
	PayrollEstimationFactor decimal.Decimal
	// SmallProfitsRate applies to trailing profit below MainRateThreshold,
	// MainRate at or above it.
	SmallProfitsRate  decimal.Decimal
	MainRate          decimal.Decimal
	MainRateThreshold decimal.Decimal
	// PayrollDueDay is the day of the following month on which payroll tax
	// falls due.
	PayrollDueDay int
	// PayrollKeywords match transaction descriptions that indicate payroll
	// activity, compared case-insensitively.
	PayrollKeywords []string
}

// UKRateTable returns the reference-jurisdiction rate table (UK FY2023+):
// 20% VAT, PAYE due on the 22nd, 19%/25% corporation tax split at 250,000.
func UKRateTable() RateTable {
	return RateTable{
		VATFallbackRate:         decimal.NewFromFloat(0.20),
		PayrollEstimationFactor: decimal.NewFromFloat(0.30),
		SmallProfitsRate:        decimal.NewFromFloat(0.19),
		MainRate:                decimal.NewFromFloat(0.25),
		MainRateThreshold:       decimal.NewFromInt(250000),
		PayrollDueDay:           22,
		PayrollKeywords:         []string{"payroll", "salary", "salaries", "wages", "paye", "hmrc", "pension"},
	}
}
