package forecast

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertKind represents the kind of forecast alert
type AlertKind string

const (
	AlertLowBalance     AlertKind = "LOW_BALANCE"
	AlertLargePayment   AlertKind = "LARGE_PAYMENT"
	AlertTaxDue         AlertKind = "TAX_DUE"
	AlertOverdueInvoice AlertKind = "OVERDUE_INVOICE"
)

// IsValid checks if the kind is a valid AlertKind
func (k AlertKind) IsValid() bool {
	switch k {
	case AlertLowBalance, AlertLargePayment, AlertTaxDue, AlertOverdueInvoice:
		return true
	}
	return false
}

// String returns the string representation of AlertKind
func (k AlertKind) String() string {
	return string(k)
}

// AlertSeverity represents how urgent an alert is
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// IsValid checks if the severity is a valid AlertSeverity
func (s AlertSeverity) IsValid() bool {
	return s == SeverityInfo || s == SeverityWarning || s == SeverityCritical
}

// Alert is a transient advisory embedded in its owning DailyForecast; it is
// never queried independently.
type Alert struct {
	Kind     AlertKind        `json:"kind"`
	Severity AlertSeverity    `json:"severity"`
	Message  string           `json:"message"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
}

// Inflows breaks a day's projected cash inflow down by source
type Inflows struct {
	FromInvoices  decimal.Decimal `json:"from_invoices"`
	FromRecurring decimal.Decimal `json:"from_recurring"`
	FromOther     decimal.Decimal `json:"from_other"`
	Total         decimal.Decimal `json:"total"`
}

// Outflows breaks a day's projected cash outflow down by destination
type Outflows struct {
	ToBills            decimal.Decimal `json:"to_bills"`
	ToRecurring        decimal.Decimal `json:"to_recurring"`
	ToTax              decimal.Decimal `json:"to_tax"`
	ToInferredPatterns decimal.Decimal `json:"to_inferred_patterns"`
	ToBudget           decimal.Decimal `json:"to_budget"`
	Total              decimal.Decimal `json:"total"`
}

// Scenarios bounds the day's closing balance under optimistic and
// pessimistic flow assumptions
type Scenarios struct {
	BestCase  decimal.Decimal `json:"best_case"`
	WorstCase decimal.Decimal `json:"worst_case"`
}

// DailyForecast is the output unit of the simulation: one projected day.
// The structural invariant openingBalance[day+1] == closingBalance[day]
// holds across a run's output. Persisted keyed uniquely by Date.
type DailyForecast struct {
	Date            time.Time       `json:"date"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	Inflows         Inflows         `json:"inflows"`
	Outflows        Outflows        `json:"outflows"`
	ClosingBalance  decimal.Decimal `json:"closing_balance"`
	Scenarios       Scenarios       `json:"scenarios"`
	ConfidenceLevel float64         `json:"confidence_level"`
	Alerts          []Alert         `json:"alerts"`
}
