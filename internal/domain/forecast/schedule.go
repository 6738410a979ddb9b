package forecast

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IntervalUnit is the cadence unit of a recurring schedule
type IntervalUnit string

const (
	IntervalDay   IntervalUnit = "DAY"
	IntervalWeek  IntervalUnit = "WEEK"
	IntervalMonth IntervalUnit = "MONTH"
	IntervalYear  IntervalUnit = "YEAR"
)

// IsValid checks if the unit is a valid IntervalUnit
func (u IntervalUnit) IsValid() bool {
	switch u {
	case IntervalDay, IntervalWeek, IntervalMonth, IntervalYear:
		return true
	}
	return false
}

// String returns the string representation of IntervalUnit
func (u IntervalUnit) String() string {
	return string(u)
}

// RecurringSchedule is a repeating invoice or bill with a fixed cadence. The
// loader only returns schedules whose next occurrence falls inside the
// horizon and whose end date, if any, has not passed.
type RecurringSchedule struct {
	ID             uuid.UUID
	Direction      Direction
	CounterpartyID uuid.UUID
	IntervalUnit   IntervalUnit
	IntervalCount  int
	NextOccurrence time.Time
	EndDate        *time.Time
	Amount         decimal.Decimal
}

// OccursOn reports whether the schedule's next occurrence falls on the given
// calendar day
func (s RecurringSchedule) OccursOn(date time.Time) bool {
	return SameDay(s.NextOccurrence, date)
}
