package transactions

import (
	"testing"
	"time"

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

	dsn := "file:transactions_" + uuid.NewString() + "?mode=memory&cache=shared"
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

type fixture struct {
	builder *models.User
	project *models.Project
	unit    *models.Unit
	buyer   *models.Buyer
}

func buildFixture(t *testing.T, conn *gorm.DB) fixture {
	t.Helper()

	builder := &models.User{
		ID:           uuid.New(),
		Name:         "Test Builder",
		Email:        "builder_" + uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Role:         enums.RoleBuilder,
	}
	require.NoError(t, conn.Create(builder).Error)

	project := &models.Project{
		ID:        uuid.New(),
		BuilderID: builder.ID,
		Name:      "Sunrise",
		Location:  "Business Bay",
	}
	require.NoError(t, conn.Create(project).Error)

	unit := &models.Unit{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Code:      "APT101",
		Floor:     1,
		Area:      120.5,
		Price:     decimal.NewFromInt(500000),
	}
	require.NoError(t, conn.Create(unit).Error)

	buyer := &models.Buyer{
		ID:           uuid.New(),
		Name:         "Amina",
		EmiratesID:   "784-1990-1234567-1",
		PhoneNumber:  "+971500000000",
		Email:        "buyer_" + uuid.NewString() + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, conn.Create(buyer).Error)

	return fixture{builder: builder, project: project, unit: unit, buyer: buyer}
}

func mustCreateBooking(t *testing.T, conn *gorm.DB, unitID, buyerID uuid.UUID) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		ID:      uuid.New(),
		UnitID:  unitID,
		BuyerID: buyerID,
		Amount:  decimal.NewFromInt(100000),
		Date:    mustDate(t, "2025-06-22"),
	}
	require.NoError(t, conn.Create(booking).Error)
	require.NoError(t, conn.Model(&models.Unit{}).
		Where("id = ?", unitID).
		UpdateColumn("booked", true).Error)
	return booking
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return date
}
