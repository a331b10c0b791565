package transactions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alnoorestates/saleledger-backend/internal/units"
	"github.com/alnoorestates/saleledger-backend/pkg/db"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
	"github.com/alnoorestates/saleledger-backend/pkg/metrics"
	"github.com/alnoorestates/saleledger-backend/pkg/pagination"
)

// Service records payment events and links them to bookings.
type Service interface {
	Record(ctx context.Context, input RecordTransactionInput) (*models.Transaction, error)
	Match(ctx context.Context, txID, bookingID uuid.UUID) (int64, error)
	ListByBuilder(ctx context.Context, builderID uuid.UUID) ([]TransactionView, error)
	ListAll(ctx context.Context, params pagination.Params) (*TransactionPage, error)
}

type service struct {
	repo         *Repository
	units        *units.Repository
	metrics      *metrics.BookingMetrics
	allowRematch bool
}

// NewService constructs a transaction ledger service. With allowRematch an
// already-matched transaction can be re-linked (last write wins); otherwise
// re-matching fails with a state conflict.
func NewService(repo *Repository, unitRepo *units.Repository, bookingMetrics *metrics.BookingMetrics, allowRematch bool) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("transaction repository required")
	}
	if unitRepo == nil {
		return nil, fmt.Errorf("unit repository required")
	}
	return &service{
		repo:         repo,
		units:        unitRepo,
		metrics:      bookingMetrics,
		allowRematch: allowRematch,
	}, nil
}

// Record inserts an unmatched payment event. It never touches unit or booking
// state.
func (s *service) Record(ctx context.Context, input RecordTransactionInput) (*models.Transaction, error) {
	if err := validateRecordInput(input); err != nil {
		return nil, err
	}

	unit, err := s.units.FindByCode(ctx, nil, strings.TrimSpace(input.UnitCode))
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unit not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find unit by code")
	}

	buyerID := input.BuyerID
	unitID := unit.ID
	txn := &models.Transaction{
		ID:            uuid.New(),
		Amount:        input.Amount,
		Date:          input.Date,
		PaymentMethod: input.PaymentMethod,
		BuyerID:       &buyerID,
		UnitID:        &unitID,
	}
	if err := s.repo.Create(ctx, txn); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert transaction")
	}
	return txn, nil
}

// Match links the transaction to the booking and returns the rows updated.
// Zero rows never goes unreported: a missing transaction or booking surfaces
// as not found, an already-matched transaction as a state conflict.
func (s *service) Match(ctx context.Context, txID, bookingID uuid.UUID) (int64, error) {
	if txID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "transaction id is required")
	}
	if bookingID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "booking id is required")
	}

	txn, err := s.repo.FindByID(ctx, txID)
	if err != nil {
		if db.IsNotFound(err) {
			s.metrics.IncMatch("not_found")
			return 0, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find transaction")
	}

	exists, err := s.repo.BookingExists(ctx, bookingID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find booking")
	}
	if !exists {
		s.metrics.IncMatch("not_found")
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}

	if txn.BookingID != nil && !s.allowRematch {
		s.metrics.IncMatch("state_conflict")
		return 0, pkgerrors.New(pkgerrors.CodeStateConflict, "transaction is already matched")
	}

	rows, err := s.repo.SetBookingRef(ctx, txID, bookingID, !s.allowRematch)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: match transaction")
	}
	if rows == 0 {
		if s.allowRematch {
			s.metrics.IncMatch("not_found")
			return 0, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		s.metrics.IncMatch("state_conflict")
		return 0, pkgerrors.New(pkgerrors.CodeStateConflict, "transaction is already matched")
	}

	s.metrics.IncMatch("matched")
	return rows, nil
}

// ListByBuilder returns transactions on the builder's units, matched and
// unmatched. Callers filter on booking_id to find unmatched rows.
func (s *service) ListByBuilder(ctx context.Context, builderID uuid.UUID) ([]TransactionView, error) {
	if builderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "builder id is required")
	}
	views, err := s.repo.ListByBuilder(ctx, builderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list transactions by builder")
	}
	return views, nil
}

// ListAll returns one page of transactions for the admin view.
func (s *service) ListAll(ctx context.Context, params pagination.Params) (*TransactionPage, error) {
	page, err := s.repo.ListAll(ctx, params)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list transactions")
	}
	return page, nil
}

func validateRecordInput(input RecordTransactionInput) error {
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
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method must be cash or bank_transfer")
	}
	return nil
}
