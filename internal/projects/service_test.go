package projects

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alnoorestates/saleledger-backend/internal/units"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	"github.com/alnoorestates/saleledger-backend/pkg/enums"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:projects_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Unit{},
	))
	return conn
}

type gormTxRunner struct {
	conn *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.conn.WithContext(ctx).Transaction(fn)
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), units.NewRepository(conn), gormTxRunner{conn: conn})
	require.NoError(t, err)
	return svc
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

func unitInput(code string) CreateUnitInput {
	return CreateUnitInput{
		Code:  code,
		Floor: 3,
		Area:  120.5,
		Price: decimal.NewFromInt(500000),
	}
}

func TestCreateProject(t *testing.T) {
	conn := openTestDB(t)
	builder := mustCreateBuilder(t, conn)

	svc := newTestService(t, conn)

	project, err := svc.Create(context.Background(), builder.ID, CreateProjectInput{
		Name:     "  Sunrise ",
		Location: "Business Bay",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, project.ID)
	assert.Equal(t, "Sunrise", project.Name)
	assert.Equal(t, 0, project.NumUnits)

	listed, err := svc.ListByBuilder(context.Background(), builder.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, project.ID, listed[0].ID)
}

func TestCreateProjectRequiresName(t *testing.T) {
	conn := openTestDB(t)
	builder := mustCreateBuilder(t, conn)

	svc := newTestService(t, conn)

	_, err := svc.Create(context.Background(), builder.ID, CreateProjectInput{Location: "Marina"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestAddUnitIncrementsCounterAtomically(t *testing.T) {
	conn := openTestDB(t)
	builder := mustCreateBuilder(t, conn)

	svc := newTestService(t, conn)

	project, err := svc.Create(context.Background(), builder.ID, CreateProjectInput{Name: "Sunrise"})
	require.NoError(t, err)

	for i, code := range []string{"APT101", "APT102"} {
		unit, err := svc.AddUnit(context.Background(), builder.ID, project.ID, unitInput(code))
		require.NoError(t, err)
		assert.Equal(t, code, unit.Code)

		var reloaded models.Project
		require.NoError(t, conn.First(&reloaded, "id = ?", project.ID).Error)
		assert.Equal(t, i+1, reloaded.NumUnits)
	}

	var unitCount int64
	require.NoError(t, conn.Model(&models.Unit{}).
		Where("project_id = ?", project.ID).
		Count(&unitCount).Error)
	assert.EqualValues(t, 2, unitCount)
}

func TestAddUnitDuplicateCodeConflictsAndLeavesCounterAlone(t *testing.T) {
	conn := openTestDB(t)
	builder := mustCreateBuilder(t, conn)

	svc := newTestService(t, conn)

	project, err := svc.Create(context.Background(), builder.ID, CreateProjectInput{Name: "Sunrise"})
	require.NoError(t, err)

	_, err = svc.AddUnit(context.Background(), builder.ID, project.ID, unitInput("APT101"))
	require.NoError(t, err)

	_, err = svc.AddUnit(context.Background(), builder.ID, project.ID, unitInput("APT101"))
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))

	var reloaded models.Project
	require.NoError(t, conn.First(&reloaded, "id = ?", project.ID).Error)
	assert.Equal(t, 1, reloaded.NumUnits)
}

func TestAddUnitSameCodeDifferentProjects(t *testing.T) {
	conn := openTestDB(t)
	builder := mustCreateBuilder(t, conn)

	svc := newTestService(t, conn)

	first, err := svc.Create(context.Background(), builder.ID, CreateProjectInput{Name: "Sunrise"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), builder.ID, CreateProjectInput{Name: "Lagoon"})
	require.NoError(t, err)

	_, err = svc.AddUnit(context.Background(), builder.ID, first.ID, unitInput("APT101"))
	require.NoError(t, err)
	_, err = svc.AddUnit(context.Background(), builder.ID, second.ID, unitInput("APT101"))
	require.NoError(t, err)
}

func TestAddUnitForeignProjectForbidden(t *testing.T) {
	conn := openTestDB(t)
	owner := mustCreateBuilder(t, conn)
	intruder := mustCreateBuilder(t, conn)

	svc := newTestService(t, conn)

	project, err := svc.Create(context.Background(), owner.ID, CreateProjectInput{Name: "Sunrise"})
	require.NoError(t, err)

	_, err = svc.AddUnit(context.Background(), intruder.ID, project.ID, unitInput("APT101"))
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeForbidden))
}

func TestAddUnitMissingProject(t *testing.T) {
	conn := openTestDB(t)
	builder := mustCreateBuilder(t, conn)

	svc := newTestService(t, conn)

	_, err := svc.AddUnit(context.Background(), builder.ID, uuid.New(), unitInput("APT101"))
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestAddUnitValidation(t *testing.T) {
	conn := openTestDB(t)
	builder := mustCreateBuilder(t, conn)

	svc := newTestService(t, conn)

	project, err := svc.Create(context.Background(), builder.ID, CreateProjectInput{Name: "Sunrise"})
	require.NoError(t, err)

	_, err = svc.AddUnit(context.Background(), builder.ID, project.ID, CreateUnitInput{
		Floor: 1,
		Area:  100,
		Price: decimal.NewFromInt(1000),
	})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = svc.AddUnit(context.Background(), builder.ID, project.ID, CreateUnitInput{
		Code:  "APT101",
		Floor: 1,
		Area:  100,
		Price: decimal.NewFromInt(-5),
	})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestListUnits(t *testing.T) {
	conn := openTestDB(t)
	builder := mustCreateBuilder(t, conn)

	svc := newTestService(t, conn)

	project, err := svc.Create(context.Background(), builder.ID, CreateProjectInput{Name: "Sunrise"})
	require.NoError(t, err)

	for _, code := range []string{"APT102", "APT101"} {
		_, err := svc.AddUnit(context.Background(), builder.ID, project.ID, unitInput(code))
		require.NoError(t, err)
	}

	listed, err := svc.ListUnits(context.Background(), builder.ID, project.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "APT101", listed[0].Code)
	assert.Equal(t, "APT102", listed[1].Code)
}

func TestListAllFiltersByBuilder(t *testing.T) {
	conn := openTestDB(t)
	first := mustCreateBuilder(t, conn)
	second := mustCreateBuilder(t, conn)

	svc := newTestService(t, conn)

	_, err := svc.Create(context.Background(), first.ID, CreateProjectInput{Name: "Sunrise"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), second.ID, CreateProjectInput{Name: "Lagoon"})
	require.NoError(t, err)

	all, err := svc.ListAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.ListAll(context.Background(), &first.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Sunrise", filtered[0].Name)
}
