package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Unit is a sellable item within a project, addressed externally by its code.
// Booked is true iff exactly one booking row references the unit; the flag is
// flipped with a compare-and-set in the same transaction as the booking insert.
type Unit struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProjectID uuid.UUID       `gorm:"column:project_id;type:uuid;not null;uniqueIndex:idx_units_project_code"`
	Code      string          `gorm:"column:code;not null;uniqueIndex:idx_units_project_code"`
	Floor     int             `gorm:"column:floor;not null"`
	Area      float64         `gorm:"column:area;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null"`
	Booked    bool            `gorm:"column:booked;not null;default:false"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`

	Project *Project `gorm:"foreignKey:ProjectID"`
}
