package models

import (
	"time"

	"github.com/google/uuid"
)

// Project groups the units a builder is selling at one development.
// NumUnits is a denormalized counter; it is only ever incremented inside the
// same transaction that inserts the unit row, so it cannot drift.
type Project struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	BuilderID uuid.UUID `gorm:"column:builder_id;type:uuid;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	Location  string    `gorm:"column:location;not null"`
	NumUnits  int       `gorm:"column:num_units;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	Builder *User `gorm:"foreignKey:BuilderID"`
}
