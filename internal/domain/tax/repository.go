package tax

import (
	"context"
	"time"
)

// ObligationRepository provides access to persisted tax obligations
type ObligationRepository interface {
	// FindPending returns obligations with status PENDING, ordered by due date
	FindPending(ctx context.Context) ([]Obligation, error)

	// UpsertBatch persists obligations keyed by (kind, due_date); rerunning
	// for the same key overwrites rather than duplicates
	UpsertBatch(ctx context.Context, obligations []Obligation) error
}

// LedgerRepository assembles the transaction window the calculator reads
type LedgerRepository interface {
	// ActivityWindow loads ledger transactions within [from, to) together
	// with the balances of designated liability accounts
	ActivityWindow(ctx context.Context, from, to time.Time) (LedgerActivity, error)
}
