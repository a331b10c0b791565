package bookings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	"github.com/alnoorestates/saleledger-backend/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:bookings_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Buyer{},
		&models.Project{},
		&models.Unit{},
		&models.Booking{},
		&models.Transaction{},
	))
	return conn
}

type gormTxRunner struct {
	conn *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.conn.WithContext(ctx).Transaction(fn)
}

func mustCreateBuilder(t *testing.T, conn *gorm.DB) *models.User {
	t.Helper()
	builder := &models.User{
		ID:           uuid.New(),
		Name:         "Test Builder",
		Email:        "builder_" + uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Role:         enums.RoleBuilder,
	}
	require.NoError(t, conn.Create(builder).Error)
	return builder
}

func mustCreateBuyer(t *testing.T, conn *gorm.DB, name string) *models.Buyer {
	t.Helper()
	buyer := &models.Buyer{
		ID:           uuid.New(),
		Name:         name,
		EmiratesID:   "784-1990-1234567-1",
		PhoneNumber:  "+971500000000",
		Email:        "buyer_" + uuid.NewString() + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, conn.Create(buyer).Error)
	return buyer
}

func mustCreateProject(t *testing.T, conn *gorm.DB, builderID uuid.UUID, name string) *models.Project {
	t.Helper()
	project := &models.Project{
		ID:        uuid.New(),
		BuilderID: builderID,
		Name:      name,
		Location:  "Downtown",
	}
	require.NoError(t, conn.Create(project).Error)
	return project
}

func mustCreateUnit(t *testing.T, conn *gorm.DB, projectID uuid.UUID, code string) *models.Unit {
	t.Helper()
	unit := &models.Unit{
		ID:        uuid.New(),
		ProjectID: projectID,
		Code:      code,
		Floor:     1,
		Area:      120.5,
		Price:     decimal.NewFromInt(500000),
	}
	require.NoError(t, conn.Create(unit).Error)
	return unit
}
