package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alnoorestates/saleledger-backend/internal/units"
	"github.com/alnoorestates/saleledger-backend/pkg/db"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
	"github.com/alnoorestates/saleledger-backend/pkg/metrics"
	"github.com/alnoorestates/saleledger-backend/pkg/pagination"
)

// Service creates bookings atomically and exposes booking queries.
type Service interface {
	Create(ctx context.Context, input CreateBookingInput) (*BookingView, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]BookingView, error)
	ListByBuilder(ctx context.Context, builderID uuid.UUID) ([]BookingView, error)
	FindByUnit(ctx context.Context, unitID uuid.UUID) (*BookingView, error)
	ListAll(ctx context.Context, search string, params pagination.Params) (*BookingPage, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo    *Repository
	units   *units.Repository
	runner  txRunner
	metrics *metrics.BookingMetrics
}

// NewService constructs a booking service instance.
func NewService(repo *Repository, unitRepo *units.Repository, runner txRunner, bookingMetrics *metrics.BookingMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if unitRepo == nil {
		return nil, fmt.Errorf("unit repository required")
	}
	if runner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:    repo,
		units:   unitRepo,
		runner:  runner,
		metrics: bookingMetrics,
	}, nil
}

// Create reserves the unit behind the code for the buyer. The unit flag flip
// and the booking insert commit together or not at all.
func (s *service) Create(ctx context.Context, input CreateBookingInput) (*BookingView, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveDuration("create", time.Since(start))
	}()

	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	unit, err := s.units.FindByCode(ctx, nil, strings.TrimSpace(input.UnitCode))
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unit not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find unit by code")
	}
	if unit.Booked {
		s.metrics.IncConflict()
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "unit is already booked")
	}

	bookingID := uuid.New()
	if err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.units.WithTx(tx).MarkBooked(ctx, unit.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: mark unit booked")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "unit is already booked")
		}

		booking := &models.Booking{
			ID:      bookingID,
			UnitID:  unit.ID,
			BuyerID: input.BuyerID,
			Amount:  input.Amount,
			Date:    input.Date,
		}
		if err := s.repo.WithTx(tx).Create(ctx, booking); err != nil {
			if db.IsUniqueViolation(err, db.ConstraintUniqueBookingUnit) {
				return pkgerrors.New(pkgerrors.CodeConflict, "unit is already booked")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert booking")
		}
		return nil
	}); err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeConflict) {
			s.metrics.IncConflict()
			return nil, err
		}
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
	}

	s.metrics.IncCreated()

	view, err := s.repo.FindView(ctx, bookingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking view")
	}
	return view, nil
}

// ListByBuyer returns the buyer's bookings. An empty result is not an error.
func (s *service) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]BookingView, error) {
	if buyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer id is required")
	}
	views, err := s.repo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list bookings by buyer")
	}
	return views, nil
}

// ListByBuilder returns bookings on the builder's units.
func (s *service) ListByBuilder(ctx context.Context, builderID uuid.UUID) ([]BookingView, error) {
	if builderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "builder id is required")
	}
	views, err := s.repo.ListByBuilder(ctx, builderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list bookings by builder")
	}
	return views, nil
}

// FindByUnit returns the booking attached to the unit.
func (s *service) FindByUnit(ctx context.Context, unitID uuid.UUID) (*BookingView, error) {
	if unitID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit id is required")
	}
	view, err := s.repo.FindViewByUnit(ctx, unitID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no booking for unit")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find booking by unit")
	}
	return view, nil
}

// ListAll returns one page of bookings for the admin view, optionally
// filtered by buyer name or unit code.
func (s *service) ListAll(ctx context.Context, search string, params pagination.Params) (*BookingPage, error) {
	page, err := s.repo.ListAll(ctx, strings.TrimSpace(search), params)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list bookings")
	}
	return page, nil
}

func validateCreateInput(input CreateBookingInput) error {
	if input.BuyerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "buyer id is required")
	}
	if strings.TrimSpace(input.UnitCode) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit code is required")
	}
	if !input.Amount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}
	if input.Date.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	return nil
}
