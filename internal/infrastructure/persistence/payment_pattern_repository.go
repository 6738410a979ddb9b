package persistence

import (
	"context"

	"github.com/cashcast/backend/internal/domain/forecast"
	"github.com/cashcast/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentPatternRepository implements forecast.PaymentPatternRepository using GORM
type GormPaymentPatternRepository struct {
	db *gorm.DB
}

// NewGormPaymentPatternRepository creates a new GormPaymentPatternRepository
func NewGormPaymentPatternRepository(db *gorm.DB) *GormPaymentPatternRepository {
	return &GormPaymentPatternRepository{db: db}
}

// FindAll returns every stored payment pattern
func (r *GormPaymentPatternRepository) FindAll(ctx context.Context) ([]forecast.PaymentPattern, error) {
	var rows []models.PaymentPatternModel
	if err := r.db.WithContext(ctx).
		Order("counterparty_id ASC, role ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	patterns := make([]forecast.PaymentPattern, len(rows))
	for i := range rows {
		patterns[i] = rows[i].ToDomain()
	}
	return patterns, nil
}
