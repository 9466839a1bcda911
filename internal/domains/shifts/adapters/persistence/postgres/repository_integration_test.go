//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	openapitypes "github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/domain"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/ports"
	"github.com/shamskitchen/go-gin-delivery-server/internal/platform/migrations"
)

func setupShiftsPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("delivery_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func mustShift(t *testing.T, label string) *domain.Shift {
	t.Helper()
	shift, err := domain.NewShift(
		openapitypes.Date{Time: time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)},
		label,
		"16:00:00",
	)
	require.NoError(t, err)
	return shift
}

func TestShiftRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupShiftsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, mustShift(t, "Shift_1"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shift_1", fetched.Label)
	assert.True(t, fetched.IsActive)

	_, err = repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestShiftRepository_DuplicateDateLabel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupShiftsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, mustShift(t, "Shift_1"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, mustShift(t, "Shift_1"))
	assert.ErrorIs(t, err, ports.ErrDuplicate)
}

func TestShiftRepository_OpenExistsAndUpdate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupShiftsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	date := openapitypes.Date{Time: time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)}

	created, err := repo.Create(ctx, mustShift(t, "Shift_1"))
	require.NoError(t, err)

	open, err := repo.OpenExists(ctx, date, "Shift_1")
	require.NoError(t, err)
	assert.True(t, open)

	ended, err := repo.Update(ctx, created.ID, func(s *domain.Shift) error {
		return s.End("23:30:00")
	})
	require.NoError(t, err)
	assert.True(t, ended.Ended())
	assert.False(t, ended.IsActive)

	open, err = repo.OpenExists(ctx, date, "Shift_1")
	require.NoError(t, err)
	assert.False(t, open)

	_, err = repo.Update(ctx, created.ID, func(s *domain.Shift) error {
		return s.End("23:45:00")
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyEnded)
}

func TestShiftRepository_ListByDate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupShiftsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, mustShift(t, "Shift_1"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, mustShift(t, "Shift_2"))
	require.NoError(t, err)

	other, err := domain.NewShift(openapitypes.Date{Time: time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC)}, "Shift_1", "16:00:00")
	require.NoError(t, err)
	_, err = repo.Create(ctx, other)
	require.NoError(t, err)

	shifts, err := repo.ListByDate(ctx, openapitypes.Date{Time: time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Len(t, shifts, 2)

	all, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPaymentDirectory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupShiftsPostgresContainer(t)
	defer cleanup()

	require.NoError(t, db.Exec("INSERT INTO payment_methods (id, name, active) VALUES (1, 'Cash', true), (2, 'Card', true)").Error)

	names, err := NewPaymentDirectory(db).PaymentNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{1: "Cash", 2: "Card"}, names)
}
