package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/cashcast/backend/internal/domain/forecast"
	"github.com/cashcast/backend/internal/domain/shared"
	"github.com/cashcast/backend/internal/domain/shared/valueobject"
	"github.com/cashcast/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPositionSnapshotRepository implements forecast.PositionSnapshotRepository using GORM
type GormPositionSnapshotRepository struct {
	db *gorm.DB
}

// NewGormPositionSnapshotRepository creates a new GormPositionSnapshotRepository
func NewGormPositionSnapshotRepository(db *gorm.DB) *GormPositionSnapshotRepository {
	return &GormPositionSnapshotRepository{db: db}
}

// Latest returns the most recently captured position snapshot. Positions read
// from a snapshot are estimates, not live figures.
func (r *GormPositionSnapshotRepository) Latest(ctx context.Context) (*forecast.CashPosition, error) {
	var model models.PositionSnapshotModel
	if err := r.db.WithContext(ctx).
		Order("captured_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	return &forecast.CashPosition{
		Cash:               model.Cash,
		AccountsReceivable: model.AccountsReceivable,
		AccountsPayable:    model.AccountsPayable,
		Precision:          valueobject.PrecisionEstimated,
	}, nil
}

// Save records a successfully loaded position for future fallback
func (r *GormPositionSnapshotRepository) Save(ctx context.Context, position forecast.CashPosition) error {
	model := &models.PositionSnapshotModel{
		ID:                 uuid.New(),
		Cash:               position.Cash,
		AccountsReceivable: position.AccountsReceivable,
		AccountsPayable:    position.AccountsPayable,
		CapturedAt:         time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(model).Error
}
