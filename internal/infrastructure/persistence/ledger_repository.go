package persistence

import (
	"context"
	"time"

	"github.com/cashcast/backend/internal/domain/tax"
	"github.com/cashcast/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerRepository implements tax.LedgerRepository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// ActivityWindow loads ledger transactions within [from, to) together with
// the current balances of all designated ledger accounts
func (r *GormLedgerRepository) ActivityWindow(ctx context.Context, from, to time.Time) (tax.LedgerActivity, error) {
	var accounts []models.LedgerAccountModel
	if err := r.db.WithContext(ctx).Find(&accounts).Error; err != nil {
		return tax.LedgerActivity{}, err
	}

	balances := make(map[string]decimal.Decimal, len(accounts))
	for i := range accounts {
		balances[accounts[i].Code] = accounts[i].Balance
	}

	var rows []models.LedgerTransactionModel
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", tax.DayOf(from), tax.DayOf(to)).
		Order("date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return tax.LedgerActivity{}, err
	}

	transactions := make([]tax.LedgerTransaction, len(rows))
	for i := range rows {
		transactions[i] = rows[i].ToDomain()
	}

	return tax.LedgerActivity{
		AccountBalances: balances,
		Transactions:    transactions,
	}, nil
}
