package units

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	"github.com/alnoorestates/saleledger-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:units_" + uuid.NewString() + "?mode=memory&cache=shared"
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

func mustCreateProject(t *testing.T, conn *gorm.DB, builderID uuid.UUID) *models.Project {
	t.Helper()
	project := &models.Project{
		ID:        uuid.New(),
		BuilderID: builderID,
		Name:      "Test Project",
		Location:  "Dubai Marina",
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
