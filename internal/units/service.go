package units

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alnoorestates/saleledger-backend/pkg/db"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
)

// Service gates whether a unit can accept a new booking.
type Service interface {
	ResolveCode(ctx context.Context, projectID *uuid.UUID, code string) (*models.Unit, error)
	IsBookable(ctx context.Context, code string) (bool, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a unit availability service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("unit repository required")
	}
	return &service{repo: repo}, nil
}

// ResolveCode maps the public unit code to the stored unit.
func (s *service) ResolveCode(ctx context.Context, projectID *uuid.UUID, code string) (*models.Unit, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit code is required")
	}

	unit, err := s.repo.FindByCode(ctx, projectID, code)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unit not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find unit by code")
	}
	return unit, nil
}

// IsBookable reports whether the unit behind the code can accept a booking.
func (s *service) IsBookable(ctx context.Context, code string) (bool, error) {
	unit, err := s.ResolveCode(ctx, nil, code)
	if err != nil {
		return false, err
	}
	return !unit.Booked, nil
}
