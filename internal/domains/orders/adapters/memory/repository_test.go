package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/ports"
)

func sampleOrder(userID uuid.UUID, shiftID int64) *domain.Order {
	order := &domain.Order{
		UserID:      userID,
		AddressID:   1,
		PaymentID:   1,
		ShiftID:     shiftID,
		PlacedAt:    time.Now().UTC(),
		DeliveryFee: decimal.NewFromInt(20),
		Items: []domain.OrderItem{
			{VariantID: 7, Quantity: 2, UnitPrice: decimal.NewFromInt(55), Subtotal: decimal.NewFromInt(110)},
		},
	}
	order.Price(order.DeliveryFee)
	return order
}

func TestRepositoryNumbersOrdersPerShift(t *testing.T) {
	repo := NewRepository(nil)
	userID := uuid.New()

	first, err := repo.Create(context.Background(), sampleOrder(userID, 1))
	require.NoError(t, err)
	second, err := repo.Create(context.Background(), sampleOrder(userID, 1))
	require.NoError(t, err)
	other, err := repo.Create(context.Background(), sampleOrder(userID, 2))
	require.NoError(t, err)

	assert.Equal(t, 1, first.Order.OrderNumber)
	assert.Equal(t, 2, second.Order.OrderNumber)
	assert.Equal(t, 1, other.Order.OrderNumber, "numbering restarts for each shift")
}

func TestRepositoryNumbersConcurrentOrdersWithoutGaps(t *testing.T) {
	repo := NewRepository(nil)
	userID := uuid.New()

	const workers = 32
	var wg sync.WaitGroup
	numbers := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			projection, err := repo.Create(context.Background(), sampleOrder(userID, 1))
			assert.NoError(t, err)
			numbers <- projection.Order.OrderNumber
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

func TestRepositoryTransitionMutatesStoredOrder(t *testing.T) {
	repo := NewRepository(nil)
	projection, err := repo.Create(context.Background(), sampleOrder(uuid.New(), 1))
	require.NoError(t, err)

	updated, err := repo.Transition(context.Background(), projection.Order.ID, func(o *domain.Order) error {
		return o.ChangeStatus(domain.StatusCancelled)
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)

	stored, err := repo.GetByID(context.Background(), projection.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Order.Status)
}

func TestRepositoryTransitionLeavesOrderUntouchedOnError(t *testing.T) {
	repo := NewRepository(nil)
	projection, err := repo.Create(context.Background(), sampleOrder(uuid.New(), 1))
	require.NoError(t, err)

	_, err = repo.Transition(context.Background(), projection.Order.ID, func(o *domain.Order) error {
		o.Status = domain.StatusDelivered
		return domain.ErrTerminalTransition
	})
	require.ErrorIs(t, err, domain.ErrTerminalTransition)

	stored, err := repo.GetByID(context.Background(), projection.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, stored.Order.Status)
}

func TestRepositoryGetByIDUnknown(t *testing.T) {
	repo := NewRepository(nil)
	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepositoryProjectionResolvesCatalogNames(t *testing.T) {
	directory := NewDirectory()
	directory.PutVariant(ports.VariantQuote{VariantID: 7, UnitPrice: decimal.NewFromInt(55), Available: true}, "Shawarma", "Large", "Chicken")
	repo := NewRepository(directory)

	projection, err := repo.Create(context.Background(), sampleOrder(uuid.New(), 1))
	require.NoError(t, err)
	require.Len(t, projection.Items, 1)
	assert.Equal(t, "Shawarma", projection.Items[0].ProductName)
	assert.Equal(t, "Large", projection.Items[0].SizeName)
	assert.Equal(t, "Chicken", projection.Items[0].TypeName)
}
