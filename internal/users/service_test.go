package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alnoorestates/saleledger-backend/pkg/config"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	"github.com/alnoorestates/saleledger-backend/pkg/enums"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
	"github.com/alnoorestates/saleledger-backend/pkg/security"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:users_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}))
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), config.PasswordConfig{})
	require.NoError(t, err)
	return svc
}

func TestRegisterBuilder(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)

	dto, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Test Builder",
		Email:    " Builder@Example.com ",
		Password: "correct horse",
		Role:     enums.RoleBuilder,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, dto.ID)
	assert.Equal(t, "builder@example.com", dto.Email)
	assert.Equal(t, enums.RoleBuilder, dto.Role)

	var stored models.User
	require.NoError(t, conn.First(&stored, "id = ?", dto.ID).Error)
	valid, err := security.VerifyPassword("correct horse", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)

	input := RegisterInput{
		Name:     "Test Builder",
		Email:    "builder@example.com",
		Password: "correct horse",
		Role:     enums.RoleBuilder,
	}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))
}

func TestRegisterValidation(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{name: "missing name", input: RegisterInput{Email: "a@b.com", Password: "long enough", Role: enums.RoleBuilder}},
		{name: "missing email", input: RegisterInput{Name: "A", Password: "long enough", Role: enums.RoleBuilder}},
		{name: "short password", input: RegisterInput{Name: "A", Email: "a@b.com", Password: "short", Role: enums.RoleBuilder}},
		{name: "buyer role rejected", input: RegisterInput{Name: "A", Email: "a@b.com", Password: "long enough", Role: enums.RoleBuyer}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.input)
			assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
		})
	}
}

func TestListBuilders(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Builder", Email: "b@example.com", Password: "long enough", Role: enums.RoleBuilder,
	})
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), RegisterInput{
		Name: "Admin", Email: "a@example.com", Password: "long enough", Role: enums.RoleAdmin,
	})
	require.NoError(t, err)

	builders, err := svc.ListBuilders(context.Background())
	require.NoError(t, err)
	require.Len(t, builders, 1)
	assert.Equal(t, "b@example.com", builders[0].Email)
}
