package types

import (
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
)

// OrderProjection is the read model for a single order: the aggregate plus
// catalog names resolved by an explicit joined query at the boundary.
type OrderProjection struct {
	Order *domain.Order
	Items []OrderItemView
}

// OrderItemView pairs a line item with its resolved catalog names.
type OrderItemView struct {
	Item        domain.OrderItem
	ProductName string
	SizeName    string
	TypeName    string
}
