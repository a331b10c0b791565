package projects

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alnoorestates/saleledger-backend/internal/repo"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
)

// Repository owns project persistence.
type Repository struct {
	base repo.Base
}

// NewRepository builds a project repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{base: r.base.WithConn(tx)}
}

// Create inserts the project row.
func (r *Repository) Create(ctx context.Context, project *models.Project) error {
	return r.base.DB(ctx).Create(project).Error
}

// FindByID loads the project without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.base.DB(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByBuilder returns the builder's projects, oldest first.
func (r *Repository) ListByBuilder(ctx context.Context, builderID uuid.UUID) ([]models.Project, error) {
	projects := []models.Project{}
	if err := r.base.DB(ctx).
		Where("builder_id = ?", builderID).
		Order("created_at ASC, id ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListAll returns every project, optionally filtered to one builder.
func (r *Repository) ListAll(ctx context.Context, builderID *uuid.UUID) ([]models.Project, error) {
	query := r.base.DB(ctx)
	if builderID != nil {
		query = query.Where("builder_id = ?", *builderID)
	}
	projects := []models.Project{}
	if err := query.
		Order("created_at ASC, id ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// IncrementUnitCount bumps the denormalized unit counter.
func (r *Repository) IncrementUnitCount(ctx context.Context, projectID uuid.UUID) (int64, error) {
	res := r.base.DB(ctx).
		Model(&models.Project{}).
		Where("id = ?", projectID).
		UpdateColumn("num_units", gorm.Expr("num_units + ?", 1))
	return res.RowsAffected, res.Error
}
