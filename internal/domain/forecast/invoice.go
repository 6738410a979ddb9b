package forecast

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction distinguishes money owed to the business from money it owes
type Direction string

const (
	DirectionReceivable Direction = "RECEIVABLE"
	DirectionPayable    Direction = "PAYABLE"
)

// IsValid checks if the direction is a valid Direction
func (d Direction) IsValid() bool {
	return d == DirectionReceivable || d == DirectionPayable
}

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// Role returns the counterparty role whose payment pattern applies to
// invoices of this direction
func (d Direction) Role() CounterpartyRole {
	if d == DirectionReceivable {
		return RoleCustomer
	}
	return RoleSupplier
}

// OpenInvoice is the unified shape of an open receivable or payable, loaded
// once per run as an immutable snapshot. The loader guarantees AmountDue > 0.
type OpenInvoice struct {
	ID               uuid.UUID
	CounterpartyID   uuid.UUID
	CounterpartyName string
	IssueDate        time.Time
	DueDate          time.Time
	AmountDue        decimal.Decimal
	TotalAmount      decimal.Decimal
	Direction        Direction
}

// ExpectedPaymentDate shifts the contractual due date by the counterparty's
// historical average days to pay. A nil pattern means "pays on due date".
func (i OpenInvoice) ExpectedPaymentDate(pattern *PaymentPattern) time.Time {
	offset := 0
	if pattern != nil {
		offset = pattern.AverageDaysToPay
	}
	return DayOf(i.DueDate).AddDate(0, 0, offset)
}

// OverdueDays returns how many whole days past due the invoice is as of the
// given day; zero or negative means not overdue.
func (i OpenInvoice) OverdueDays(asOf time.Time) int {
	return int(DayOf(asOf).Sub(DayOf(i.DueDate)).Hours() / 24)
}

// DayOf truncates a timestamp to its calendar day in UTC. Forecast dates are
// calendar days; all date comparisons in the engine go through this.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}
