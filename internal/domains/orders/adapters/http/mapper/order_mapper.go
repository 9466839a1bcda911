package mapper

import (
	"time"

	"github.com/google/uuid"

	orderstypes "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/application/types"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
)

// CreateOrderItem is one inbound (variant, quantity) line.
type CreateOrderItem struct {
	VariantID int64 `json:"variantId" binding:"required"`
	Quantity  int32 `json:"quantity" binding:"required"`
	Plain     bool  `json:"plain,omitempty"`
}

// CreateOrder captures the inbound order placement payload. Prices never
// appear here; the service quotes them from the catalog.
type CreateOrder struct {
	UserID        uuid.UUID         `json:"userId" binding:"required"`
	AddressID     int64             `json:"addressId" binding:"required"`
	PaymentID     int64             `json:"paymentId" binding:"required"`
	ShiftID       int64             `json:"shiftId" binding:"required"`
	CustomerNotes *string           `json:"customerNotes,omitempty"`
	ExternalNotes *string           `json:"externalNotes,omitempty"`
	Items         []CreateOrderItem `json:"items" binding:"required"`
}

// UpdateStatus is the administrative status update payload.
type UpdateStatus struct {
	Status string `json:"status" binding:"required"`
}

// OrderItem is the HTTP representation of one priced line item.
type OrderItem struct {
	ID        int64  `json:"id"`
	VariantID int64  `json:"variantId"`
	Product   string `json:"product,omitempty"`
	Size      string `json:"size,omitempty"`
	Type      string `json:"type,omitempty"`
	Quantity  int32  `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Subtotal  string `json:"subtotal"`
	Plain     bool   `json:"plain"`
}

// Order is the HTTP representation of an order.
type Order struct {
	ID            int64       `json:"id"`
	OrderNumber   int         `json:"orderNumber"`
	UserID        uuid.UUID   `json:"userId"`
	AddressID     int64       `json:"addressId"`
	PaymentID     int64       `json:"paymentId"`
	ShiftID       int64       `json:"shiftId"`
	PlacedAt      time.Time   `json:"placedAt"`
	Status        string      `json:"status"`
	DeliveryFee   string      `json:"deliveryFee"`
	TotalPrice    string      `json:"totalPrice"`
	CustomerNotes *string     `json:"customerNotes,omitempty"`
	ExternalNotes *string     `json:"externalNotes,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
}

// ToCreateInput maps the transport payload to the application input.
func ToCreateInput(payload CreateOrder) orderstypes.CreateOrderInput {
	items := make([]orderstypes.CreateOrderItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, orderstypes.CreateOrderItemInput{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Plain:     item.Plain,
		})
	}
	return orderstypes.CreateOrderInput{
		UserID:        payload.UserID,
		AddressID:     payload.AddressID,
		PaymentID:     payload.PaymentID,
		ShiftID:       payload.ShiftID,
		CustomerNotes: payload.CustomerNotes,
		ExternalNotes: payload.ExternalNotes,
		Items:         items,
	}
}

// FromProjection maps an order projection, items included, to the transport
// representation. Monetary values render with two decimal places.
func FromProjection(projection *orderstypes.OrderProjection) Order {
	if projection == nil || projection.Order == nil {
		return Order{}
	}
	out := FromDomainOrder(projection.Order)
	out.Items = make([]OrderItem, 0, len(projection.Items))
	for _, view := range projection.Items {
		out.Items = append(out.Items, OrderItem{
			ID:        view.Item.ID,
			VariantID: view.Item.VariantID,
			Product:   view.ProductName,
			Size:      view.SizeName,
			Type:      view.TypeName,
			Quantity:  view.Item.Quantity,
			UnitPrice: view.Item.UnitPrice.StringFixed(2),
			Subtotal:  view.Item.Subtotal.StringFixed(2),
			Plain:     view.Item.Plain,
		})
	}
	return out
}

// FromDomainOrder maps an order header without item details.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	return Order{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID,
		AddressID:     order.AddressID,
		PaymentID:     order.PaymentID,
		ShiftID:       order.ShiftID,
		PlacedAt:      order.PlacedAt,
		Status:        string(order.Status),
		DeliveryFee:   order.DeliveryFee.StringFixed(2),
		TotalPrice:    order.TotalPrice.StringFixed(2),
		CustomerNotes: order.CustomerNotes,
		ExternalNotes: order.ExternalNotes,
	}
}

// FromDomainOrderList maps a list of order headers.
func FromDomainOrderList(orders []*domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromDomainOrder(order))
	}
	return out
}
