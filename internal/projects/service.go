package projects

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/alnoorestates/saleledger-backend/internal/units"
	"github.com/alnoorestates/saleledger-backend/pkg/db"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
)

// CreateProjectInput holds the validated payload to create a project.
type CreateProjectInput struct {
	Name     string
	Location string
}

// CreateUnitInput holds the validated payload to add a unit to a project.
type CreateUnitInput struct {
	Code  string
	Floor int
	Area  float64
	Price decimal.Decimal
}

// Service manages builder projects and their units.
type Service interface {
	Create(ctx context.Context, builderID uuid.UUID, input CreateProjectInput) (*models.Project, error)
	ListByBuilder(ctx context.Context, builderID uuid.UUID) ([]models.Project, error)
	ListAll(ctx context.Context, builderID *uuid.UUID) ([]models.Project, error)
	AddUnit(ctx context.Context, builderID, projectID uuid.UUID, input CreateUnitInput) (*models.Unit, error)
	ListUnits(ctx context.Context, builderID, projectID uuid.UUID) ([]models.Unit, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo   *Repository
	units  *units.Repository
	runner txRunner
}

// NewService constructs a project service instance.
func NewService(repo *Repository, unitRepo *units.Repository, runner txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("project repository required")
	}
	if unitRepo == nil {
		return nil, fmt.Errorf("unit repository required")
	}
	if runner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, units: unitRepo, runner: runner}, nil
}

// Create registers a new project for the builder.
func (s *service) Create(ctx context.Context, builderID uuid.UUID, input CreateProjectInput) (*models.Project, error) {
	if builderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "builder id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project name is required")
	}

	project := &models.Project{
		ID:        uuid.New(),
		BuilderID: builderID,
		Name:      name,
		Location:  strings.TrimSpace(input.Location),
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert project")
	}
	return project, nil
}

// ListByBuilder returns the builder's projects.
func (s *service) ListByBuilder(ctx context.Context, builderID uuid.UUID) ([]models.Project, error) {
	if builderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "builder id is required")
	}
	projects, err := s.repo.ListByBuilder(ctx, builderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list projects")
	}
	return projects, nil
}

// ListAll returns every project for the admin view, optionally filtered to
// one builder.
func (s *service) ListAll(ctx context.Context, builderID *uuid.UUID) ([]models.Project, error) {
	projects, err := s.repo.ListAll(ctx, builderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list projects")
	}
	return projects, nil
}

// AddUnit inserts a unit and bumps the project's num_units counter in the
// same transaction, so the counter cannot drift from the unit rows.
func (s *service) AddUnit(ctx context.Context, builderID, projectID uuid.UUID, input CreateUnitInput) (*models.Unit, error) {
	if err := validateUnitInput(input); err != nil {
		return nil, err
	}

	project, err := s.ownedProject(ctx, builderID, projectID)
	if err != nil {
		return nil, err
	}

	unit := &models.Unit{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Code:      strings.TrimSpace(input.Code),
		Floor:     input.Floor,
		Area:      input.Area,
		Price:     input.Price,
	}
	if err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Create(unit).Error; err != nil {
			if db.IsUniqueViolation(err, db.ConstraintUniqueUnitCode) {
				return pkgerrors.New(pkgerrors.CodeConflict, "unit code already exists in project")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert unit")
		}
		rows, err := s.repo.WithTx(tx).IncrementUnitCount(ctx, project.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: increment unit count")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return nil
	}); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add unit")
	}
	return unit, nil
}

// ListUnits returns the project's units after an ownership check.
func (s *service) ListUnits(ctx context.Context, builderID, projectID uuid.UUID) ([]models.Unit, error) {
	project, err := s.ownedProject(ctx, builderID, projectID)
	if err != nil {
		return nil, err
	}
	unitRows, err := s.units.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list units")
	}
	return unitRows, nil
}

func (s *service) ownedProject(ctx context.Context, builderID, projectID uuid.UUID) (*models.Project, error) {
	if builderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "builder id is required")
	}
	if projectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id is required")
	}

	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find project")
	}
	if project.BuilderID != builderID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "project does not belong to builder")
	}
	return project, nil
}

func validateUnitInput(input CreateUnitInput) error {
	if strings.TrimSpace(input.Code) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit code is required")
	}
	if input.Area <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "area must be greater than zero")
	}
	if !input.Price.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}
	return nil
}
