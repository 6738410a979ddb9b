package tax

import (
	"testing"
	"time"

	"github.com/cashcast/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ukProfile() Profile {
	return Profile{
		VATRegistered:               true,
		VATCadence:                  VATCadenceQuarterly,
		FiscalYearEndMonth:          time.March,
		FiscalYearEndDay:            31,
		VATLiabilityAccountCode:     "2200",
		PayrollLiabilityAccountCode: "2210",
		HasPayroll:                  true,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func findByKind(obligations []Obligation, kind Kind) []Obligation {
	var out []Obligation
	for _, o := range obligations {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}

// ============================================
// VAT Tests
// ============================================

func TestCalculator_VATDueDate_QuarterEndMarch(t *testing.T) {
	calc := NewCalculator(ukProfile(), UKRateTable())
	activity := LedgerActivity{
		AccountBalances: map[string]decimal.Decimal{"2200": decimal.NewFromInt(12000)},
	}

	obligations := calc.UpcomingObligations(date(2026, time.March, 1), 90, activity)
	vat := findByKind(obligations, KindVAT)
	require.NotEmpty(t, vat)

	// Quarter ending 31 March is due 31 March + 1 month + 7 days = 7 May.
	assert.Equal(t, date(2026, time.May, 7), vat[0].DueDate)
	require.NotNil(t, vat[0].PeriodEnd)
	assert.Equal(t, date(2026, time.March, 31), *vat[0].PeriodEnd)
}

func TestCalculator_VATAmount_PreciseLiabilitySpreadQuarterly(t *testing.T) {
	calc := NewCalculator(ukProfile(), UKRateTable())
	activity := LedgerActivity{
		AccountBalances: map[string]decimal.Decimal{"2200": decimal.NewFromInt(12000)},
	}

	obligations := calc.UpcomingObligations(date(2026, time.March, 1), 90, activity)
	vat := findByKind(obligations, KindVAT)
	require.NotEmpty(t, vat)

	assert.True(t, decimal.NewFromInt(3000).Equal(vat[0].Amount), "annual 12000 / 4 quarters, got %s", vat[0].Amount)
	assert.Equal(t, valueobject.PrecisionPrecise, vat[0].Precision)
}

func TestCalculator_VATAmount_HeuristicFallbackFromReceipts(t *testing.T) {
	profile := ukProfile()
	profile.VATLiabilityAccountCode = ""
	profile.VATCadence = VATCadenceMonthly
	calc := NewCalculator(profile, UKRateTable())

	// 30,000 of sales receipts over the trailing 3 months => 10,000/month,
	// 20% VAT => 2,000/month.
	activity := LedgerActivity{
		Transactions: []LedgerTransaction{
			{Date: date(2026, time.January, 15), Amount: decimal.NewFromInt(10000), Direction: FlowIn},
			{Date: date(2026, time.February, 15), Amount: decimal.NewFromInt(10000), Direction: FlowIn},
			{Date: date(2026, time.February, 25), Amount: decimal.NewFromInt(10000), Direction: FlowIn},
		},
	}

	obligations := calc.UpcomingObligations(date(2026, time.March, 1), 45, activity)
	vat := findByKind(obligations, KindVAT)
	require.NotEmpty(t, vat)

	assert.True(t, decimal.NewFromInt(2000).Equal(vat[0].Amount), "got %s", vat[0].Amount)
	assert.Equal(t, valueobject.PrecisionEstimated, vat[0].Precision)
}

func TestCalculator_VATSkippedWhenNotRegistered(t *testing.T) {
	profile := ukProfile()
	profile.VATRegistered = false
	calc := NewCalculator(profile, UKRateTable())

	obligations := calc.UpcomingObligations(date(2026, time.March, 1), 365, LedgerActivity{
		AccountBalances: map[string]decimal.Decimal{"2200": decimal.NewFromInt(12000)},
	})
	assert.Empty(t, findByKind(obligations, KindVAT))
}

func TestCalculator_VATQuarterlyOnlyAtQuarterEnds(t *testing.T) {
	calc := NewCalculator(ukProfile(), UKRateTable())
	activity := LedgerActivity{
		AccountBalances: map[string]decimal.Decimal{"2200": decimal.NewFromInt(12000)},
	}

	// 2026-01-01 + 180 days reaches the end of June: exactly two quarter
	// ends (March, June) fall in the window.
	obligations := calc.UpcomingObligations(date(2026, time.January, 1), 180, activity)
	vat := findByKind(obligations, KindVAT)
	require.Len(t, vat, 2)
	assert.Equal(t, date(2026, time.March, 31), *vat[0].PeriodEnd)
	assert.Equal(t, date(2026, time.June, 30), *vat[1].PeriodEnd)
}

// ============================================
// Payroll Tests
// ============================================

func TestCalculator_PayrollDueOn22ndOfFollowingMonth(t *testing.T) {
	calc := NewCalculator(ukProfile(), UKRateTable())
	activity := LedgerActivity{
		AccountBalances: map[string]decimal.Decimal{"2210": decimal.NewFromInt(4500)},
	}

	obligations := calc.UpcomingObligations(date(2026, time.March, 1), 45, activity)
	payroll := findByKind(obligations, KindPayroll)
	require.NotEmpty(t, payroll)

	assert.Equal(t, date(2026, time.April, 22), payroll[0].DueDate)
	assert.True(t, decimal.NewFromInt(4500).Equal(payroll[0].Amount))
	assert.Equal(t, valueobject.PrecisionPrecise, payroll[0].Precision)
}

func TestCalculator_PayrollKeywordHeuristic(t *testing.T) {
	profile := ukProfile()
	profile.PayrollLiabilityAccountCode = ""
	calc := NewCalculator(profile, UKRateTable())

	// 30,000 of payroll-keyword outflows over 3 months => 10,000/month,
	// 30% factor => 3,000/month estimate. The office rent is ignored.
	activity := LedgerActivity{
		Transactions: []LedgerTransaction{
			{Date: date(2026, time.January, 28), Amount: decimal.NewFromInt(10000), Description: "Payroll run January", Direction: FlowOut},
			{Date: date(2026, time.February, 26), Amount: decimal.NewFromInt(10000), Description: "HMRC PAYE", Direction: FlowOut},
			{Date: date(2026, time.February, 27), Amount: decimal.NewFromInt(10000), Description: "Staff salaries", Direction: FlowOut},
			{Date: date(2026, time.February, 1), Amount: decimal.NewFromInt(8000), Description: "Office rent", Direction: FlowOut},
		},
	}

	obligations := calc.UpcomingObligations(date(2026, time.March, 1), 45, activity)
	payroll := findByKind(obligations, KindPayroll)
	require.NotEmpty(t, payroll)

	assert.True(t, decimal.NewFromInt(3000).Equal(payroll[0].Amount), "got %s", payroll[0].Amount)
	assert.Equal(t, valueobject.PrecisionEstimated, payroll[0].Precision)
}

// ============================================
// Corporate Tax Tests
// ============================================

func TestCalculator_CorporateBrackets(t *testing.T) {
	tests := []struct {
		name         string
		profit       int64
		expectedRate string
	}{
		{"below threshold uses small profits rate", 100000, "0.19"},
		{"at threshold uses main rate", 250000, "0.25"},
		{"above threshold uses main rate", 300000, "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator(ukProfile(), UKRateTable())
			activity := LedgerActivity{
				Transactions: []LedgerTransaction{
					{Date: date(2025, time.October, 1), Amount: decimal.NewFromInt(tt.profit), Direction: FlowIn},
				},
			}

			obligations := calc.UpcomingObligations(date(2026, time.January, 10), 90, activity)
			corp := findByKind(obligations, KindCorporate)
			require.NotEmpty(t, corp)

			rate := decimal.RequireFromString(tt.expectedRate)
			expected := decimal.NewFromInt(tt.profit).Mul(rate)
			assert.True(t, expected.Equal(corp[0].Amount), "expected %s got %s", expected, corp[0].Amount)
		})
	}
}

func TestCalculator_CorporateDueDate_NineMonthsOneDayAfterYearEnd(t *testing.T) {
	calc := NewCalculator(ukProfile(), UKRateTable())
	activity := LedgerActivity{
		Transactions: []LedgerTransaction{
			{Date: date(2025, time.November, 1), Amount: decimal.NewFromInt(50000), Direction: FlowIn},
		},
	}

	obligations := calc.UpcomingObligations(date(2026, time.January, 10), 90, activity)
	corp := findByKind(obligations, KindCorporate)
	require.NotEmpty(t, corp)

	// 31 March year end: due 31 December + 1 day = 1 January.
	assert.Equal(t, date(2027, time.January, 1), corp[0].DueDate)
}

func TestCalculator_CorporateSkippedOnZeroProfit(t *testing.T) {
	calc := NewCalculator(ukProfile(), UKRateTable())
	activity := LedgerActivity{
		Transactions: []LedgerTransaction{
			{Date: date(2025, time.November, 1), Amount: decimal.NewFromInt(50000), Direction: FlowIn},
			{Date: date(2025, time.December, 1), Amount: decimal.NewFromInt(90000), Direction: FlowOut},
		},
	}

	obligations := calc.UpcomingObligations(date(2026, time.January, 10), 90, activity)
	assert.Empty(t, findByKind(obligations, KindCorporate))
}

// ============================================
// Determinism & date helpers
// ============================================

func TestCalculator_Deterministic(t *testing.T) {
	calc := NewCalculator(ukProfile(), UKRateTable())
	activity := LedgerActivity{
		AccountBalances: map[string]decimal.Decimal{
			"2200": decimal.NewFromInt(12000),
			"2210": decimal.NewFromInt(4500),
		},
		Transactions: []LedgerTransaction{
			{Date: date(2025, time.November, 1), Amount: decimal.NewFromInt(80000), Direction: FlowIn},
			{Date: date(2025, time.December, 5), Amount: decimal.NewFromInt(20000), Direction: FlowOut},
		},
	}

	first := calc.UpcomingObligations(date(2026, time.February, 1), 120, activity)
	second := calc.UpcomingObligations(date(2026, time.February, 1), 120, activity)
	require.Equal(t, first, second)
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{"march 31 plus one month clamps to april 30", date(2026, time.March, 31), 1, date(2026, time.April, 30)},
		{"january 31 plus one month clamps to february 28", date(2026, time.January, 31), 1, date(2026, time.February, 28)},
		{"january 31 plus one month in leap year", date(2028, time.January, 31), 1, date(2028, time.February, 29)},
		{"mid-month unaffected", date(2026, time.March, 15), 1, date(2026, time.April, 15)},
		{"nine months forward", date(2026, time.March, 31), 9, date(2026, time.December, 31)},
		{"negative months", date(2026, time.March, 31), -1, date(2026, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, addMonthsClamped(tt.start, tt.months))
		})
	}
}

func TestMonthEndsBetween(t *testing.T) {
	ends := monthEndsBetween(date(2026, time.January, 15), date(2026, time.April, 10))
	require.Len(t, ends, 3)
	assert.Equal(t, date(2026, time.January, 31), ends[0])
	assert.Equal(t, date(2026, time.February, 28), ends[1])
	assert.Equal(t, date(2026, time.March, 31), ends[2])
}
