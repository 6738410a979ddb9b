package models

import (
	"time"

	"github.com/cashcast/backend/internal/domain/shared/valueobject"
	"github.com/cashcast/backend/internal/domain/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxObligationModel is the persistence model for calculated and filed tax
// obligations. Rows are keyed uniquely by (kind, due_date) so recalculation
// updates estimates in place instead of duplicating them.
type TaxObligationModel struct {
	ID          uuid.UUID             `gorm:"type:uuid;primaryKey"`
	Kind        tax.Kind              `gorm:"type:varchar(20);not null;uniqueIndex:idx_obligation_kind_due,priority:1"`
	DueDate     time.Time             `gorm:"type:date;not null;uniqueIndex:idx_obligation_kind_due,priority:2"`
	Amount      decimal.Decimal       `gorm:"type:decimal(20,4);not null"`
	PeriodStart *time.Time            `gorm:"type:date"`
	PeriodEnd   *time.Time            `gorm:"type:date"`
	Reference   string                `gorm:"type:varchar(100)"`
	Status      tax.Status            `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Precision   valueobject.Precision `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time             `gorm:"autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (TaxObligationModel) TableName() string {
	return "tax_obligations"
}

// ToDomain converts the persistence model to a domain Obligation
func (m *TaxObligationModel) ToDomain() tax.Obligation {
	return tax.Obligation{
		Kind:        m.Kind,
		DueDate:     m.DueDate,
		Amount:      m.Amount,
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		Reference:   m.Reference,
		Status:      m.Status,
		Precision:   m.Precision,
	}
}

// TaxObligationModelFromDomain creates a persistence model from a domain
// Obligation. The ID is freshly generated; upserts match on (kind, due_date).
func TaxObligationModelFromDomain(o tax.Obligation) *TaxObligationModel {
	return &TaxObligationModel{
		ID:          uuid.New(),
		Kind:        o.Kind,
		DueDate:     tax.DayOf(o.DueDate),
		Amount:      o.Amount,
		PeriodStart: o.PeriodStart,
		PeriodEnd:   o.PeriodEnd,
		Reference:   o.Reference,
		Status:      o.Status,
		Precision:   o.Precision,
	}
}

// LedgerAccountModel is the persistence model for designated ledger accounts
// whose balances give precise tax liability figures.
type LedgerAccountModel struct {
	Code      string          `gorm:"type:varchar(20);primaryKey"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (LedgerAccountModel) TableName() string {
	return "ledger_accounts"
}

// LedgerTransactionModel is the persistence model for bank and ledger
// movements read by the tax estimation heuristics.
type LedgerTransactionModel struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Date        time.Time         `gorm:"type:date;not null;index"`
	Amount      decimal.Decimal   `gorm:"type:decimal(20,4);not null"`
	Description string            `gorm:"type:varchar(500)"`
	Direction   tax.FlowDirection `gorm:"type:varchar(5);not null;index"`
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (LedgerTransactionModel) TableName() string {
	return "ledger_transactions"
}

// ToDomain converts the persistence model to a domain LedgerTransaction
func (m *LedgerTransactionModel) ToDomain() tax.LedgerTransaction {
	return tax.LedgerTransaction{
		Date:        m.Date,
		Amount:      m.Amount,
		Description: m.Description,
		Direction:   m.Direction,
	}
}
