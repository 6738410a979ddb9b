package persistence

import (
	"context"
	"time"

	"github.com/cashcast/backend/internal/domain/forecast"
	"github.com/cashcast/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBudgetRepository implements forecast.BudgetRepository using GORM
type GormBudgetRepository struct {
	db *gorm.DB
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

// FindWithin returns budget lines whose month overlaps [from, to]. The month
// containing from is included even though its period start precedes from.
func (r *GormBudgetRepository) FindWithin(ctx context.Context, from, to time.Time) ([]forecast.BudgetLine, error) {
	firstMonth := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)

	var rows []models.BudgetLineModel
	if err := r.db.WithContext(ctx).
		Where("month_period >= ? AND month_period <= ?", firstMonth, forecast.DayOf(to)).
		Order("month_period ASC, account_code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	lines := make([]forecast.BudgetLine, len(rows))
	for i := range rows {
		lines[i] = rows[i].ToDomain()
	}
	return lines, nil
}
