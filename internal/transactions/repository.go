package transactions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alnoorestates/saleledger-backend/internal/repo"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	"github.com/alnoorestates/saleledger-backend/pkg/pagination"
)

const transactionViewSelect = `transactions.id,
transactions.amount,
transactions.date,
transactions.payment_method,
transactions.buyer_id,
transactions.unit_id,
transactions.booking_id,
transactions.created_at,
buyers.name AS buyer_name,
units.code AS unit_code,
projects.name AS project_name`

// Repository owns transaction persistence and the matching update.
type Repository struct {
	base repo.Base
}

// NewRepository builds a transaction repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{base: r.base.WithConn(tx)}
}

// Create inserts the transaction row.
func (r *Repository) Create(ctx context.Context, txn *models.Transaction) error {
	return r.base.DB(ctx).Create(txn).Error
}

// FindByID loads the transaction without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.base.DB(ctx).First(&txn, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

// BookingExists reports whether the booking row is present.
func (r *Repository) BookingExists(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var count int64
	err := r.base.DB(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Count(&count).Error
	return count > 0, err
}

// SetBookingRef links the transaction to the booking and returns the number
// of rows updated. With onlyUnmatched the update refuses to overwrite an
// existing link, so a concurrent match loses with zero rows.
func (r *Repository) SetBookingRef(ctx context.Context, txID, bookingID uuid.UUID, onlyUnmatched bool) (int64, error) {
	query := r.base.DB(ctx).
		Model(&models.Transaction{}).
		Where("id = ?", txID)
	if onlyUnmatched {
		query = query.Where("booking_id IS NULL")
	}
	res := query.UpdateColumn("booking_id", bookingID)
	return res.RowsAffected, res.Error
}

// viewQuery joins display fields through the matched booking, so unmatched
// transactions keep nil buyer and unit fields.
func (r *Repository) viewQuery(ctx context.Context) *gorm.DB {
	return r.base.DB(ctx).
		Table("transactions").
		Select(transactionViewSelect).
		Joins("LEFT JOIN bookings ON bookings.id = transactions.booking_id").
		Joins("LEFT JOIN buyers ON buyers.id = bookings.buyer_id").
		Joins("LEFT JOIN units ON units.id = bookings.unit_id").
		Joins("LEFT JOIN projects ON projects.id = units.project_id")
}

// ListByBuilder returns transactions on units across the builder's projects,
// matched and unmatched.
func (r *Repository) ListByBuilder(ctx context.Context, builderID uuid.UUID) ([]TransactionView, error) {
	views := []TransactionView{}
	if err := r.base.DB(ctx).
		Table("transactions").
		Select(transactionViewSelect).
		Joins("JOIN units ON units.id = transactions.unit_id").
		Joins("JOIN projects ON projects.id = units.project_id").
		Joins("LEFT JOIN buyers ON buyers.id = transactions.buyer_id").
		Where("projects.builder_id = ?", builderID).
		Order("transactions.created_at DESC, transactions.id DESC").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// ListAll returns a page of transactions for the admin view, newest first.
func (r *Repository) ListAll(ctx context.Context, params pagination.Params) (*TransactionPage, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	query := r.viewQuery(ctx)
	if cursor != nil {
		query = query.Where("(transactions.created_at < ?) OR (transactions.created_at = ? AND transactions.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	views := []TransactionView{}
	if err := query.
		Order("transactions.created_at DESC, transactions.id DESC").
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

	return &TransactionPage{Items: views, NextCursor: nextCursor}, nil
}
