package persistence

import (
	"context"

	"github.com/cashcast/backend/internal/domain/forecast"
	"github.com/cashcast/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDailyForecastRepository implements forecast.DailyForecastRepository using GORM
type GormDailyForecastRepository struct {
	db *gorm.DB
}

// NewGormDailyForecastRepository creates a new GormDailyForecastRepository
func NewGormDailyForecastRepository(db *gorm.DB) *GormDailyForecastRepository {
	return &GormDailyForecastRepository{db: db}
}

// UpsertBatch writes a run's projected days in one transaction, keyed by
// forecast date. Rerunning for overlapping dates overwrites the earlier rows.
func (r *GormDailyForecastRepository) UpsertBatch(ctx context.Context, days []forecast.DailyForecast) error {
	if len(days) == 0 {
		return nil
	}

	rows := make([]*models.DailyForecastModel, len(days))
	for i := range days {
		rows[i] = models.DailyForecastModelFromDomain(days[i])
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "forecast_date"}},
				UpdateAll: true,
			}).
			Create(&rows).Error
	})
}
