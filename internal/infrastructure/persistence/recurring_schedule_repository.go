package persistence

import (
	"context"
	"time"

	"github.com/cashcast/backend/internal/domain/forecast"
	"github.com/cashcast/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRecurringScheduleRepository implements forecast.RecurringScheduleRepository using GORM
type GormRecurringScheduleRepository struct {
	db *gorm.DB
}

// NewGormRecurringScheduleRepository creates a new GormRecurringScheduleRepository
func NewGormRecurringScheduleRepository(db *gorm.DB) *GormRecurringScheduleRepository {
	return &GormRecurringScheduleRepository{db: db}
}

// FindActiveWithin returns active schedules whose next occurrence falls in
// [from, to] and whose end date is null or has not passed
func (r *GormRecurringScheduleRepository) FindActiveWithin(ctx context.Context, from, to time.Time) ([]forecast.RecurringSchedule, error) {
	var rows []models.RecurringScheduleModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("next_occurrence >= ? AND next_occurrence <= ?", forecast.DayOf(from), forecast.DayOf(to)).
		Where("end_date IS NULL OR end_date >= ?", forecast.DayOf(from)).
		Order("next_occurrence ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	schedules := make([]forecast.RecurringSchedule, len(rows))
	for i := range rows {
		schedules[i] = rows[i].ToDomain()
	}
	return schedules, nil
}
