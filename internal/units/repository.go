package units

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alnoorestates/saleledger-backend/internal/repo"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
)

// Repository owns unit persistence, including the booked flag.
type Repository struct {
	base repo.Base
}

// NewRepository builds a unit repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{base: r.base.WithConn(tx)}
}

// FindByID loads the unit without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	var unit models.Unit
	if err := r.base.DB(ctx).First(&unit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

// FindByCode resolves the externally visible unit code. A nil projectID
// resolves the code across all projects.
func (r *Repository) FindByCode(ctx context.Context, projectID *uuid.UUID, code string) (*models.Unit, error) {
	query := r.base.DB(ctx).Where("code = ?", code)
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	var unit models.Unit
	if err := query.Order("created_at ASC").First(&unit).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

// MarkBooked flips the booked flag with a compare-and-set. Zero rows affected
// means another booking already claimed the unit.
func (r *Repository) MarkBooked(ctx context.Context, unitID uuid.UUID) (int64, error) {
	res := r.base.DB(ctx).
		Model(&models.Unit{}).
		Where("id = ? AND booked = ?", unitID, false).
		UpdateColumn("booked", true)
	return res.RowsAffected, res.Error
}

// Release clears the booked flag. Zero rows affected means the unit was not
// booked.
func (r *Repository) Release(ctx context.Context, unitID uuid.UUID) (int64, error) {
	res := r.base.DB(ctx).
		Model(&models.Unit{}).
		Where("id = ? AND booked = ?", unitID, true).
		UpdateColumn("booked", false)
	return res.RowsAffected, res.Error
}

// ListByProject returns the project's units ordered by code.
func (r *Repository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Unit, error) {
	var units []models.Unit
	if err := r.base.DB(ctx).
		Where("project_id = ?", projectID).
		Order("code ASC").
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}
