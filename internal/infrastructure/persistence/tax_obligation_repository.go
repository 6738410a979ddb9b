package persistence

import (
	"context"

	"github.com/cashcast/backend/internal/domain/tax"
	"github.com/cashcast/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaxObligationRepository implements tax.ObligationRepository using GORM
type GormTaxObligationRepository struct {
	db *gorm.DB
}

// NewGormTaxObligationRepository creates a new GormTaxObligationRepository
func NewGormTaxObligationRepository(db *gorm.DB) *GormTaxObligationRepository {
	return &GormTaxObligationRepository{db: db}
}

// FindPending returns obligations with status PENDING, ordered by due date
func (r *GormTaxObligationRepository) FindPending(ctx context.Context) ([]tax.Obligation, error) {
	var rows []models.TaxObligationModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", tax.StatusPending).
		Order("due_date ASC, kind ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	obligations := make([]tax.Obligation, len(rows))
	for i := range rows {
		obligations[i] = rows[i].ToDomain()
	}
	return obligations, nil
}

// UpsertBatch persists obligations keyed by (kind, due_date). Estimate
// columns are refreshed on conflict; status is left untouched so a row
// already marked PAID stays paid.
func (r *GormTaxObligationRepository) UpsertBatch(ctx context.Context, obligations []tax.Obligation) error {
	if len(obligations) == 0 {
		return nil
	}

	rows := make([]*models.TaxObligationModel, len(obligations))
	for i, o := range obligations {
		rows[i] = models.TaxObligationModelFromDomain(o)
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "kind"}, {Name: "due_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"amount", "period_start", "period_end", "reference", "precision", "updated_at",
			}),
		}).
		Create(&rows).Error
}
