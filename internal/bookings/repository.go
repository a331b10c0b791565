package bookings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alnoorestates/saleledger-backend/internal/repo"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	"github.com/alnoorestates/saleledger-backend/pkg/pagination"
)

const bookingViewSelect = `bookings.id,
bookings.unit_id,
bookings.buyer_id,
bookings.amount,
bookings.date,
bookings.created_at,
units.code AS unit_code,
projects.name AS project_name,
buyers.name AS buyer_name`

// Repository owns booking persistence and the joined read queries.
type Repository struct {
	base repo.Base
}

// NewRepository builds a booking repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{base: r.base.WithConn(tx)}
}

// Create inserts the booking row. The unique index on unit_id rejects a
// second booking for the same unit.
func (r *Repository) Create(ctx context.Context, booking *models.Booking) error {
	return r.base.DB(ctx).Create(booking).Error
}

func (r *Repository) viewQuery(ctx context.Context) *gorm.DB {
	return r.base.DB(ctx).
		Table("bookings").
		Select(bookingViewSelect).
		Joins("JOIN units ON units.id = bookings.unit_id").
		Joins("JOIN projects ON projects.id = units.project_id").
		Joins("JOIN buyers ON buyers.id = bookings.buyer_id")
}

// FindView loads one booking with its display fields.
func (r *Repository) FindView(ctx context.Context, bookingID uuid.UUID) (*BookingView, error) {
	var view BookingView
	if err := r.viewQuery(ctx).
		Where("bookings.id = ?", bookingID).
		Take(&view).Error; err != nil {
		return nil, err
	}
	return &view, nil
}

// FindViewByUnit loads the booking attached to the unit, if any.
func (r *Repository) FindViewByUnit(ctx context.Context, unitID uuid.UUID) (*BookingView, error) {
	var view BookingView
	if err := r.viewQuery(ctx).
		Where("bookings.unit_id = ?", unitID).
		Take(&view).Error; err != nil {
		return nil, err
	}
	return &view, nil
}

// ListByBuyer returns the buyer's bookings, newest first.
func (r *Repository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]BookingView, error) {
	views := []BookingView{}
	if err := r.viewQuery(ctx).
		Where("bookings.buyer_id = ?", buyerID).
		Order("bookings.created_at DESC, bookings.id DESC").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// ListByBuilder returns bookings on units across the builder's projects.
func (r *Repository) ListByBuilder(ctx context.Context, builderID uuid.UUID) ([]BookingView, error) {
	views := []BookingView{}
	if err := r.viewQuery(ctx).
		Where("projects.builder_id = ?", builderID).
		Order("bookings.created_at DESC, bookings.id DESC").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// ListAll returns a page of bookings, newest first, optionally filtered by
// buyer name or unit code.
func (r *Repository) ListAll(ctx context.Context, search string, params pagination.Params) (*BookingPage, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	query := r.viewQuery(ctx)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("buyers.name LIKE ? OR units.code LIKE ?", pattern, pattern)
	}
	if cursor != nil {
		query = query.Where("(bookings.created_at < ?) OR (bookings.created_at = ? AND bookings.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	views := []BookingView{}
	if err := query.
		Order("bookings.created_at DESC, bookings.id DESC").
		Limit(limitWithBuffer).
		Scan(&views).Error; err != nil {
		return nil, err
	}

	var nextCursor string
	if len(views) > pageSize {
		views = views[:pageSize]
		last := views[len(views)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return &BookingPage{Items: views, NextCursor: nextCursor}, nil
}

// CountByUnit reports how many booking rows reference the unit.
func (r *Repository) CountByUnit(ctx context.Context, unitID uuid.UUID) (int64, error) {
	var count int64
	err := r.base.DB(ctx).
		Model(&models.Booking{}).
		Where("unit_id = ?", unitID).
		Count(&count).Error
	return count, err
}
