package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Precision describes how a numeric figure was obtained. Figures derived
// directly from ledger records are PRECISE; figures produced by a heuristic
// are ESTIMATED; figures substituted after a source failure are DEGRADED.
type Precision string

const (
	PrecisionPrecise   Precision = "PRECISE"
	PrecisionEstimated Precision = "ESTIMATED"
	PrecisionDegraded  Precision = "DEGRADED"
)

// IsValid checks if the precision is a valid Precision value
func (p Precision) IsValid() bool {
	switch p {
	case PrecisionPrecise, PrecisionEstimated, PrecisionDegraded:
		return true
	}
	return false
}

// String returns the string representation of Precision
func (p Precision) String() string {
	return string(p)
}

// Estimate is an immutable monetary figure tagged with the precision of its
// derivation, so callers can assert on data quality instead of inferring it
// from logs.
type Estimate struct {
	amount    decimal.Decimal
	precision Precision
}

// NewEstimate creates an Estimate with the given amount and precision
func NewEstimate(amount decimal.Decimal, precision Precision) (Estimate, error) {
	if !precision.IsValid() {
		return Estimate{}, fmt.Errorf("invalid precision: %s", precision)
	}
	return Estimate{amount: amount, precision: precision}, nil
}

// PreciseEstimate creates an Estimate backed by exact ledger data
func PreciseEstimate(amount decimal.Decimal) Estimate {
	return Estimate{amount: amount, precision: PrecisionPrecise}
}

// HeuristicEstimate creates an Estimate derived from a fallback heuristic
func HeuristicEstimate(amount decimal.Decimal) Estimate {
	return Estimate{amount: amount, precision: PrecisionEstimated}
}

// DegradedEstimate creates a zero Estimate recorded after a source failure
func DegradedEstimate() Estimate {
	return Estimate{amount: decimal.Zero, precision: PrecisionDegraded}
}

// Amount returns the monetary value
func (e Estimate) Amount() decimal.Decimal {
	return e.amount
}

// Precision returns how the value was derived
func (e Estimate) Precision() Precision {
	return e.precision
}

// IsPrecise returns true if the value came directly from ledger records
func (e Estimate) IsPrecise() bool {
	return e.precision == PrecisionPrecise
}

// String returns a human-readable representation
func (e Estimate) String() string {
	return fmt.Sprintf("%s (%s)", e.amount.String(), e.precision)
}
