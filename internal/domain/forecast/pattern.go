package forecast

import (
	"github.com/google/uuid"
)

// CounterpartyRole distinguishes customer payment behavior from supplier
// payment behavior
type CounterpartyRole string

const (
	RoleCustomer CounterpartyRole = "CUSTOMER"
	RoleSupplier CounterpartyRole = "SUPPLIER"
)

// IsValid checks if the role is a valid CounterpartyRole
func (r CounterpartyRole) IsValid() bool {
	return r == RoleCustomer || r == RoleSupplier
}

// String returns the string representation of CounterpartyRole
func (r CounterpartyRole) String() string {
	return string(r)
}

// PaymentPattern is the historical payment behavior of one counterparty in
// one role. It is used only to shift expected payment dates away from the
// contractual due date; absence of a pattern implies "pays on due date".
type PaymentPattern struct {
	CounterpartyID   uuid.UUID
	Role             CounterpartyRole
	AverageDaysToPay int
	OnTimeRate       float64
	SampleSize       int
}

// PatternKey identifies a pattern by counterparty and role
type PatternKey struct {
	CounterpartyID uuid.UUID
	Role           CounterpartyRole
}

// PatternIndex provides O(1) pattern lookup during simulation
type PatternIndex map[PatternKey]*PaymentPattern

// IndexPatterns builds a lookup index from a pattern list
func IndexPatterns(patterns []PaymentPattern) PatternIndex {
	index := make(PatternIndex, len(patterns))
	for i := range patterns {
		p := patterns[i]
		index[PatternKey{CounterpartyID: p.CounterpartyID, Role: p.Role}] = &p
	}
	return index
}

// Lookup returns the pattern for a counterparty in a role, or nil
func (idx PatternIndex) Lookup(counterpartyID uuid.UUID, role CounterpartyRole) *PaymentPattern {
	return idx[PatternKey{CounterpartyID: counterpartyID, Role: role}]
}
