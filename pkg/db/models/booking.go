package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Booking reserves a unit for a buyer. The unique index on unit_id is the
// storage-level guarantee that concurrent bookings cannot both land.
type Booking struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UnitID    uuid.UUID       `gorm:"column:unit_id;type:uuid;not null;uniqueIndex:idx_bookings_unit_id"`
	BuyerID   uuid.UUID       `gorm:"column:buyer_id;type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	Date      time.Time       `gorm:"column:date;type:date;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`

	Unit  *Unit  `gorm:"foreignKey:UnitID"`
	Buyer *Buyer `gorm:"foreignKey:BuyerID"`
}
