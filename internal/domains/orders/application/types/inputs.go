package types

import (
	"github.com/google/uuid"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
)

// CreateOrderInput carries everything needed to price and place an order.
type CreateOrderInput struct {
	UserID        uuid.UUID
	AddressID     int64
	PaymentID     int64
	ShiftID       int64
	CustomerNotes *string
	ExternalNotes *string
	Items         []CreateOrderItemInput
}

// CreateOrderItemInput is one requested (variant, quantity) pair.
type CreateOrderItemInput struct {
	VariantID int64
	Quantity  int32
	Plain     bool
}

// CancelOrderInput identifies a customer-scoped cancellation.
type CancelOrderInput struct {
	UserID  uuid.UUID
	OrderID int64
}

// UpdateStatusInput is the administrative status update.
type UpdateStatusInput struct {
	OrderID int64
	Status  domain.Status
}

// PageInput bounds list queries. Limit is capped by the service.
type PageInput struct {
	Skip  int
	Limit int
}
