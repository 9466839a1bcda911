//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/ports"
	"github.com/shamskitchen/go-gin-delivery-server/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
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

// seedReferenceData inserts the rows every order depends on and returns the
// seeded user id.
func seedReferenceData(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	require.NoError(t, db.Exec(
		"INSERT INTO users (id, name, phone, created_at, updated_at) VALUES (?, 'Test Customer', '0790000001', NOW(), NOW())",
		userID,
	).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO delivery_zones (id, name, delivery_fee) VALUES (1, 'Downtown', 20.00)",
	).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO addresses (id, user_id, zone_id, details, phones) VALUES (1, ?, 1, 'Main St 5', ARRAY['0790000001'])",
		userID,
	).Error)
	require.NoError(t, db.Exec("INSERT INTO categories (id, name) VALUES (1, 'Sandwiches')").Error)
	require.NoError(t, db.Exec("INSERT INTO products (id, category_id, name) VALUES (1, 1, 'Shawarma')").Error)
	require.NoError(t, db.Exec("INSERT INTO sizes (id, name) VALUES (1, 'Large')").Error)
	require.NoError(t, db.Exec("INSERT INTO types (id, name) VALUES (1, 'Chicken')").Error)
	require.NoError(t, db.Exec(
		"INSERT INTO product_variants (id, product_id, size_id, type_id, price, available) VALUES (1, 1, 1, 1, 55.00, TRUE)",
	).Error)
	require.NoError(t, db.Exec("INSERT INTO payment_methods (id, name, active) VALUES (1, 'Cash', true)").Error)
	require.NoError(t, db.Exec(
		"INSERT INTO shifts (id, date, label, start_time, is_active, created_at, updated_at) VALUES (1, CURRENT_DATE, 'Shift_1', '16:00:00', TRUE, NOW(), NOW())",
	).Error)
	return userID
}

func buildOrder(userID uuid.UUID, shiftID int64) *domain.Order {
	order := &domain.Order{
		UserID:      userID,
		AddressID:   1,
		PaymentID:   1,
		ShiftID:     shiftID,
		PlacedAt:    time.Now().UTC(),
		DeliveryFee: decimal.New(2000, -2),
		Items: []domain.OrderItem{
			{VariantID: 1, Quantity: 2, UnitPrice: decimal.New(5500, -2), Subtotal: decimal.New(11000, -2)},
		},
	}
	order.Price(order.DeliveryFee)
	return order
}

func TestRepository_CreateAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()
	userID := seedReferenceData(t, db)

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, buildOrder(userID, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, created.Order.OrderNumber)
	assert.Equal(t, domain.StatusPreparing, created.Order.Status)

	fetched, err := repo.GetByID(ctx, created.Order.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Order.TotalPrice.Equal(decimal.New(13000, -2)), "total %s", fetched.Order.TotalPrice)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "Shawarma", fetched.Items[0].ProductName)
	assert.Equal(t, "Large", fetched.Items[0].SizeName)
	assert.Equal(t, "Chicken", fetched.Items[0].TypeName)
}

func TestRepository_NumbersConcurrentOrders(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()
	userID := seedReferenceData(t, db)

	repo := NewRepository(db)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	numbers := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := repo.Create(ctx, buildOrder(userID, 1))
			assert.NoError(t, err)
			if created != nil {
				numbers <- created.Order.OrderNumber
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[int]bool{}
	for n := range numbers {
		assert.False(t, seen[n], "order number %d assigned twice", n)
		seen[n] = true
	}
	for n := 1; n <= workers; n++ {
		assert.True(t, seen[n], "missing order number %d", n)
	}
}

func TestRepository_CreateRejectsUnknownShift(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()
	userID := seedReferenceData(t, db)

	repo := NewRepository(db)
	_, err := repo.Create(context.Background(), buildOrder(userID, 99))
	assert.ErrorIs(t, err, ports.ErrInvalidReference)
}

func TestRepository_Transition(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()
	userID := seedReferenceData(t, db)

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, buildOrder(userID, 1))
	require.NoError(t, err)

	updated, err := repo.Transition(ctx, created.Order.ID, func(o *domain.Order) error {
		return o.ChangeStatus(domain.StatusDelivered)
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)

	_, err = repo.Transition(ctx, created.Order.ID, func(o *domain.Order) error {
		return o.ChangeStatus(domain.StatusPreparing)
	})
	assert.ErrorIs(t, err, domain.ErrTerminalTransition)

	_, err = repo.Transition(ctx, 404, func(o *domain.Order) error { return nil })
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestLookups(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()
	userID := seedReferenceData(t, db)

	lookups := NewLookups(db)
	ctx := context.Background()

	require.NoError(t, lookups.UserExists(ctx, userID))
	assert.ErrorIs(t, lookups.UserExists(ctx, uuid.New()), ports.ErrUserNotFound)

	fee, err := lookups.DeliveryCost(ctx, userID, 1)
	require.NoError(t, err)
	assert.True(t, fee.Equal(decimal.New(2000, -2)))
	_, err = lookups.DeliveryCost(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, ports.ErrAddressNotFound)

	quote, err := lookups.Variant(ctx, 1)
	require.NoError(t, err)
	assert.True(t, quote.Available)
	assert.True(t, quote.UnitPrice.Equal(decimal.New(5500, -2)))
	_, err = lookups.Variant(ctx, 404)
	assert.ErrorIs(t, err, ports.ErrVariantNotFound)

	require.NoError(t, lookups.ShiftExists(ctx, 1))
	assert.ErrorIs(t, lookups.ShiftExists(ctx, 99), ports.ErrShiftNotFound)
}
