package tax

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FlowDirection distinguishes money entering the business from money leaving it
type FlowDirection string

const (
	FlowIn  FlowDirection = "IN"
	FlowOut FlowDirection = "OUT"
)

// LedgerTransaction is a bank or ledger movement inside the estimation window.
// Amounts are positive; the direction carries the sign.
type LedgerTransaction struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Direction   FlowDirection
}

// LedgerActivity is the immutable transaction window the calculator estimates
// from. It is assembled once per forecast run so the calculator stays pure and
// deterministic given the same window.
type LedgerActivity struct {
	// AccountBalances maps designated ledger account codes to their current
	// balance. A designated account present here yields a PRECISE estimate.
	AccountBalances map[string]decimal.Decimal
	Transactions    []LedgerTransaction
}

// AccountBalance looks up a designated account's balance. The second return
// is false when the code is empty or no balance is recorded for it.
func (a LedgerActivity) AccountBalance(code string) (decimal.Decimal, bool) {
	if code == "" {
		return decimal.Zero, false
	}
	balance, ok := a.AccountBalances[code]
	return balance, ok
}

// ReceiptsBetween sums inbound transactions within [from, to)
func (a LedgerActivity) ReceiptsBetween(from, to time.Time) decimal.Decimal {
	return a.sumBetween(from, to, FlowIn, nil)
}

// PaymentsBetween sums outbound transactions within [from, to)
func (a LedgerActivity) PaymentsBetween(from, to time.Time) decimal.Decimal {
	return a.sumBetween(from, to, FlowOut, nil)
}

// KeywordPaymentsBetween sums outbound transactions within [from, to) whose
// description contains any of the given keywords, case-insensitively.
func (a LedgerActivity) KeywordPaymentsBetween(from, to time.Time, keywords []string) decimal.Decimal {
	return a.sumBetween(from, to, FlowOut, keywords)
}

func (a LedgerActivity) sumBetween(from, to time.Time, direction FlowDirection, keywords []string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range a.Transactions {
		if tx.Direction != direction {
			continue
		}
		if tx.Date.Before(from) || !tx.Date.Before(to) {
			continue
		}
		if keywords != nil && !matchesAnyKeyword(tx.Description, keywords) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total
}

func matchesAnyKeyword(description string, keywords []string) bool {
	lowered := strings.ToLower(description)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
