package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alnoorestates/saleledger-backend/pkg/enums"
)

// Transaction records a payment event. It is created unmatched
// (booking_id NULL) and linked to a booking by an explicit match; payment is
// evidence, not proof of a completed booking.
type Transaction struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Amount        decimal.Decimal     `gorm:"column:amount;type:numeric(14,2);not null"`
	Date          time.Time           `gorm:"column:date;type:date;not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	BuyerID       *uuid.UUID          `gorm:"column:buyer_id;type:uuid;index"`
	UnitID        *uuid.UUID          `gorm:"column:unit_id;type:uuid;index"`
	BookingID     *uuid.UUID          `gorm:"column:booking_id;type:uuid;index"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`

	Buyer   *Buyer   `gorm:"foreignKey:BuyerID"`
	Unit    *Unit    `gorm:"foreignKey:UnitID"`
	Booking *Booking `gorm:"foreignKey:BookingID"`
}
