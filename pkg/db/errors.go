package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ConstraintUniqueBookingUnit names the unique index that realizes the
// one-active-booking-per-unit invariant at the storage layer.
const ConstraintUniqueBookingUnit = "idx_bookings_unit_id"

// ConstraintUniqueUnitCode names the composite index keeping unit codes
// unique within a project.
const ConstraintUniqueUnitCode = "idx_units_project_code"

// IsUniqueViolation reports whether the provided error references a unique
// constraint violation. When constraintName is provided, the helper looks for
// the constraint text in the error message.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" && strings.Contains(msg, constraintName) {
		return true
	}
	// Postgres and sqlite phrasings respectively.
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// IsNotFound reports whether the error is GORM's empty-result sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
