package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/application/types"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrNumberingConflict is returned when shift-scoped numbering keeps
	// colliding after the bounded retry.
	ErrNumberingConflict = errors.New("order number conflict for shift")
	// ErrInvalidReference is returned when a persisted foreign key does not
	// resolve (e.g. unknown payment method).
	ErrInvalidReference = errors.New("order references unknown record")
)

// Repository persists order aggregates. Create assigns the shift-scoped order
// number and writes the header plus all items in one atomic transaction.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*types.OrderProjection, error)
	GetByID(ctx context.Context, id int64) (*types.OrderProjection, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, skip, limit int) ([]*domain.Order, error)
	ListByUserAndStatuses(ctx context.Context, userID uuid.UUID, statuses []domain.Status, skip, limit int) ([]*domain.Order, error)
	ListByShift(ctx context.Context, shiftID int64) ([]*domain.Order, error)
	// Transition loads the order, applies the mutation under the same
	// transaction, and persists the result. Apply errors roll back.
	Transition(ctx context.Context, id int64, apply func(*domain.Order) error) (*domain.Order, error)
}
