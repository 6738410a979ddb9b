package tax

import (
	"sort"
	"time"

	"github.com/cashcast/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Kind represents the kind of tax obligation
type Kind string

const (
	KindVAT       Kind = "VAT"       // Value-added tax / GST
	KindPayroll   Kind = "PAYROLL"   // Employer payroll tax (PAYE/NI equivalent)
	KindCorporate Kind = "CORPORATE" // Corporation tax on trailing profit
)

// IsValid checks if the kind is a valid Kind
func (k Kind) IsValid() bool {
	switch k {
	case KindVAT, KindPayroll, KindCorporate:
		return true
	}
	return false
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// Status represents the payment status of an obligation
type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusPaid
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Obligation represents a future tax payment with a due date and an amount
// that is either read from ledger records or estimated by a heuristic.
type Obligation struct {
	Kind        Kind
	DueDate     time.Time
	Amount      decimal.Decimal
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Reference   string
	Status      Status
	Precision   valueobject.Precision
}

// ObligationKey identifies an obligation for deduplication purposes.
// Two obligations with the same kind and due date describe the same payment.
type ObligationKey struct {
	Kind    Kind
	DueDate time.Time
}

// Key returns the deduplication key of the obligation. The due date is
// normalized to a calendar day so obligations loaded from the store and
// freshly calculated ones compare equal.
func (o Obligation) Key() ObligationKey {
	return ObligationKey{Kind: o.Kind, DueDate: DayOf(o.DueDate)}
}

// IsDueOn reports whether the obligation falls due on the given calendar day
func (o Obligation) IsDueOn(date time.Time) bool {
	return DayOf(o.DueDate).Equal(DayOf(date))
}

// MergeObligations merges persisted obligations with freshly calculated ones,
// deduplicating by (kind, due date). The persisted record wins on conflict
// because it may carry a filed amount rather than an estimate. The result is
// sorted by due date, then kind, for deterministic downstream iteration.
func MergeObligations(persisted, calculated []Obligation) []Obligation {
	seen := make(map[ObligationKey]struct{}, len(persisted)+len(calculated))
	merged := make([]Obligation, 0, len(persisted)+len(calculated))

	for _, o := range persisted {
		if _, ok := seen[o.Key()]; ok {
			continue
		}
		seen[o.Key()] = struct{}{}
		merged = append(merged, o)
	}
	for _, o := range calculated {
		if _, ok := seen[o.Key()]; ok {
			continue
		}
		seen[o.Key()] = struct{}{}
		merged = append(merged, o)
	}

	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].DueDate.Equal(merged[j].DueDate) {
			return merged[i].DueDate.Before(merged[j].DueDate)
		}
		return merged[i].Kind < merged[j].Kind
	})
	return merged
}

// DayOf truncates a timestamp to its calendar day in UTC
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
