package models

import (
	"time"

	"github.com/google/uuid"
)

// Buyer is a purchasing identity, kept separate from platform users.
type Buyer struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	EmiratesID   string    `gorm:"column:emirates_id;not null"`
	PhoneNumber  string    `gorm:"column:phone_number;not null"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
