package forecast

import (
	"github.com/cashcast/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CashPosition is a snapshot of the organization's cash standing as of "now".
// It is recomputed at the start of every forecast run and never persisted on
// its own. Precision records whether the figures came from the live store
// (PRECISE), a stale fallback snapshot (ESTIMATED) or a zero substitute after
// a source failure (DEGRADED).
type CashPosition struct {
	Cash               decimal.Decimal
	AccountsReceivable decimal.Decimal
	AccountsPayable    decimal.Decimal
	Precision          valueobject.Precision
}

// NewCashPosition creates a position read directly from the store
func NewCashPosition(cash, receivable, payable decimal.Decimal) CashPosition {
	return CashPosition{
		Cash:               cash,
		AccountsReceivable: receivable,
		AccountsPayable:    payable,
		Precision:          valueobject.PrecisionPrecise,
	}
}

// DegradedPosition returns the zero position used when the store is
// unreachable and no fallback snapshot is available. The run continues in
// degraded mode rather than failing outright.
func DegradedPosition() CashPosition {
	return CashPosition{
		Cash:               decimal.Zero,
		AccountsReceivable: decimal.Zero,
		AccountsPayable:    decimal.Zero,
		Precision:          valueobject.PrecisionDegraded,
	}
}

// IsDegraded reports whether the position is the zero substitute
func (p CashPosition) IsDegraded() bool {
	return p.Precision == valueobject.PrecisionDegraded
}

// NetPosition returns cash plus receivables minus payables
func (p CashPosition) NetPosition() decimal.Decimal {
	return p.Cash.Add(p.AccountsReceivable).Sub(p.AccountsPayable)
}
