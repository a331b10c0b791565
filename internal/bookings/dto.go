package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBookingInput holds the validated payload to reserve a unit.
type CreateBookingInput struct {
	BuyerID  uuid.UUID
	UnitCode string
	Amount   decimal.Decimal
	Date     time.Time
}

// BookingPage is one cursor page of bookings.
type BookingPage struct {
	Items      []BookingView `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// BookingView is a booking row joined with its display fields.
type BookingView struct {
	ID          uuid.UUID       `gorm:"column:id" json:"id"`
	UnitID      uuid.UUID       `gorm:"column:unit_id" json:"unit_id"`
	BuyerID     uuid.UUID       `gorm:"column:buyer_id" json:"buyer_id"`
	UnitCode    string          `gorm:"column:unit_code" json:"unit_code"`
	ProjectName string          `gorm:"column:project_name" json:"project_name"`
	BuyerName   string          `gorm:"column:buyer_name" json:"buyer_name"`
	Amount      decimal.Decimal `gorm:"column:amount" json:"amount"`
	Date        time.Time       `gorm:"column:date" json:"date"`
	CreatedAt   time.Time       `gorm:"column:created_at" json:"created_at"`
}
