package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/application/types"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
)

// Service exposes the orders bounded context use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error)
	GetOrder(ctx context.Context, id int64) (*types.OrderProjection, error)
	ListOrders(ctx context.Context, page types.PageInput) ([]*domain.Order, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID, page types.PageInput) ([]*domain.Order, error)
	ListUserActiveOrders(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	ListUserOrdersByStatus(ctx context.Context, userID uuid.UUID, status domain.Status, page types.PageInput) ([]*domain.Order, error)
	ListShiftOrders(ctx context.Context, shiftID int64, page types.PageInput) ([]*domain.Order, error)
	CancelOrder(ctx context.Context, input types.CancelOrderInput) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, input types.UpdateStatusInput) (*domain.Order, error)
}
