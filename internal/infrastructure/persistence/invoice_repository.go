package persistence

import (
	"context"

	"github.com/cashcast/backend/internal/domain/forecast"
	"github.com/cashcast/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements forecast.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindOpen returns open invoices of a direction, oldest due date first.
// Only invoices with a positive outstanding amount are open.
func (r *GormInvoiceRepository) FindOpen(ctx context.Context, direction forecast.Direction) ([]forecast.OpenInvoice, error) {
	var rows []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("direction = ? AND amount_due > 0", direction).
		Order("due_date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	invoices := make([]forecast.OpenInvoice, len(rows))
	for i := range rows {
		invoices[i] = rows[i].ToDomain()
	}
	return invoices, nil
}

// SumOpenAmount sums the outstanding amount over open invoices of a direction
func (r *GormInvoiceRepository) SumOpenAmount(ctx context.Context, direction forecast.Direction) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("COALESCE(SUM(amount_due), 0) as total").
		Where("direction = ? AND amount_due > 0", direction).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}
