package transactions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alnoorestates/saleledger-backend/pkg/enums"
)

// RecordTransactionInput holds the validated payload for a payment event.
type RecordTransactionInput struct {
	BuyerID       uuid.UUID
	UnitCode      string
	Amount        decimal.Decimal
	Date          time.Time
	PaymentMethod enums.PaymentMethod
}

// TransactionPage is one cursor page of transactions.
type TransactionPage struct {
	Items      []TransactionView `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// TransactionView is a transaction row with display fields joined through its
// matched booking. Unmatched rows carry nil display fields.
type TransactionView struct {
	ID            uuid.UUID           `gorm:"column:id" json:"id"`
	Amount        decimal.Decimal     `gorm:"column:amount" json:"amount"`
	Date          time.Time           `gorm:"column:date" json:"date"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method" json:"payment_method"`
	BuyerID       *uuid.UUID          `gorm:"column:buyer_id" json:"buyer_id"`
	UnitID        *uuid.UUID          `gorm:"column:unit_id" json:"unit_id"`
	BookingID     *uuid.UUID          `gorm:"column:booking_id" json:"booking_id"`
	BuyerName     *string             `gorm:"column:buyer_name" json:"buyer_name"`
	UnitCode      *string             `gorm:"column:unit_code" json:"unit_code"`
	ProjectName   *string             `gorm:"column:project_name" json:"project_name"`
	CreatedAt     time.Time           `gorm:"column:created_at" json:"created_at"`
}

// Matched reports whether the transaction is linked to a booking.
func (v TransactionView) Matched() bool {
	return v.BookingID != nil
}
