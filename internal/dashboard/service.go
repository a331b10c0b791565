package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
)

// MetricsSnapshot summarizes a builder's sales state. All five values come
// from the same read transaction, so they are mutually consistent.
type MetricsSnapshot struct {
	TotalProjects         int64           `gorm:"column:total_projects" json:"total_projects"`
	TotalUnits            int64           `gorm:"column:total_units" json:"total_units"`
	UnitsBooked           int64           `gorm:"column:units_booked" json:"units_booked"`
	TotalBookingAmount    decimal.Decimal `gorm:"column:total_booking_amount" json:"total_booking_amount"`
	UnmatchedTransactions int64           `gorm:"column:unmatched_transactions" json:"unmatched_transactions"`
}

// ProjectMetricsSnapshot is the per-project breakdown of the same shape.
type ProjectMetricsSnapshot struct {
	ProjectID             uuid.UUID       `gorm:"column:project_id" json:"project_id"`
	ProjectName           string          `gorm:"column:project_name" json:"project_name"`
	TotalUnits            int64           `gorm:"column:total_units" json:"total_units"`
	UnitsBooked           int64           `gorm:"column:units_booked" json:"units_booked"`
	TotalBookingAmount    decimal.Decimal `gorm:"column:total_booking_amount" json:"total_booking_amount"`
	UnmatchedTransactions int64           `gorm:"column:unmatched_transactions" json:"unmatched_transactions"`
}

const builderMetricsQuery = `
SELECT
  (SELECT COUNT(*) FROM projects p WHERE p.builder_id = ?) AS total_projects,
  (SELECT COUNT(*) FROM units u
     JOIN projects p ON p.id = u.project_id
    WHERE p.builder_id = ?) AS total_units,
  (SELECT COUNT(*) FROM units u
     JOIN projects p ON p.id = u.project_id
    WHERE p.builder_id = ? AND u.booked = TRUE) AS units_booked,
  COALESCE((SELECT SUM(b.amount) FROM bookings b
     JOIN units u ON u.id = b.unit_id
     JOIN projects p ON p.id = u.project_id
    WHERE p.builder_id = ?), 0) AS total_booking_amount,
  (SELECT COUNT(*) FROM transactions t
     JOIN units u ON u.id = t.unit_id
     JOIN projects p ON p.id = u.project_id
    WHERE p.builder_id = ? AND t.booking_id IS NULL) AS unmatched_transactions
`

const projectMetricsQuery = `
SELECT
  p.id AS project_id,
  p.name AS project_name,
  (SELECT COUNT(*) FROM units u WHERE u.project_id = p.id) AS total_units,
  (SELECT COUNT(*) FROM units u
    WHERE u.project_id = p.id AND u.booked = TRUE) AS units_booked,
  COALESCE((SELECT SUM(b.amount) FROM bookings b
     JOIN units u ON u.id = b.unit_id
    WHERE u.project_id = p.id), 0) AS total_booking_amount,
  (SELECT COUNT(*) FROM transactions t
     JOIN units u ON u.id = t.unit_id
    WHERE u.project_id = p.id AND t.booking_id IS NULL) AS unmatched_transactions
FROM projects p
WHERE p.builder_id = ?
ORDER BY p.created_at ASC, p.id ASC
`

// Service computes read-only summary statistics for a builder.
type Service interface {
	Metrics(ctx context.Context, builderID uuid.UUID) (*MetricsSnapshot, error)
	PerProject(ctx context.Context, builderID uuid.UUID) ([]ProjectMetricsSnapshot, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	runner txRunner
}

// NewService constructs a dashboard aggregator.
func NewService(runner txRunner) (Service, error) {
	if runner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{runner: runner}, nil
}

// Metrics returns the builder-wide snapshot. Sums over zero rows yield zero.
func (s *service) Metrics(ctx context.Context, builderID uuid.UUID) (*MetricsSnapshot, error) {
	if builderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "builder id is required")
	}

	var snapshot MetricsSnapshot
	if err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Raw(builderMetricsQuery,
			builderID, builderID, builderID, builderID, builderID,
		).Scan(&snapshot).Error
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: builder metrics")
	}
	return &snapshot, nil
}

// PerProject returns the snapshot broken down per project.
func (s *service) PerProject(ctx context.Context, builderID uuid.UUID) ([]ProjectMetricsSnapshot, error) {
	if builderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "builder id is required")
	}

	snapshots := []ProjectMetricsSnapshot{}
	if err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Raw(projectMetricsQuery, builderID).Scan(&snapshots).Error
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: project metrics")
	}
	return snapshots, nil
}
