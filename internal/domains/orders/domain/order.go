package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status enumerates order progression.
type Status string

const (
	StatusPreparing  Status = "preparing"
	StatusInDelivery Status = "in_delivery"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

const (
	// MaxItemsPerOrder bounds the line-item list on a single order.
	MaxItemsPerOrder = 100
	// MaxQuantityPerItem bounds the quantity on a single line item.
	MaxQuantityPerItem = 100
)

var (
	ErrInvalidUser         = errors.New("user id is required")
	ErrInvalidAddress      = errors.New("address id must be greater than zero")
	ErrInvalidPayment      = errors.New("payment id must be greater than zero")
	ErrInvalidShift        = errors.New("shift id must be greater than zero")
	ErrInvalidVariant      = errors.New("variant id must be greater than zero")
	ErrEmptyItems          = errors.New("order requires at least one item")
	ErrTooManyItems        = errors.New("order exceeds the maximum number of items")
	ErrInvalidQuantity     = errors.New("item quantity must be between 1 and 100")
	ErrInvalidStatus       = errors.New("order status is invalid")
	ErrTerminalTransition  = errors.New("order is in a terminal status")
	ErrNegativeDeliveryFee = errors.New("delivery fee cannot be negative")
)

// Order models the placed-order aggregate. The header is immutable once
// priced, except for status and notes.
type Order struct {
	ID            int64
	UserID        uuid.UUID
	AddressID     int64
	PaymentID     int64
	ShiftID       int64
	OrderNumber   int
	PlacedAt      time.Time
	DeliveryFee   decimal.Decimal
	TotalPrice    decimal.Decimal
	Status        Status
	CustomerNotes *string
	ExternalNotes *string
	Items         []OrderItem
}

// OrderItem is a priced snapshot of one purchased variant. UnitPrice is
// captured from the catalog at order time and never re-derived.
type OrderItem struct {
	ID        int64
	OrderID   int64
	VariantID int64
	Quantity  int32
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	Plain     bool
}

// Validate enforces structural invariants on the aggregate.
func (o *Order) Validate() error {
	if o.UserID == uuid.Nil {
		return ErrInvalidUser
	}
	if o.AddressID <= 0 {
		return ErrInvalidAddress
	}
	if o.PaymentID <= 0 {
		return ErrInvalidPayment
	}
	if o.ShiftID <= 0 {
		return ErrInvalidShift
	}
	if o.DeliveryFee.IsNegative() {
		return ErrNegativeDeliveryFee
	}
	if len(o.Items) == 0 {
		return ErrEmptyItems
	}
	if len(o.Items) > MaxItemsPerOrder {
		return ErrTooManyItems
	}
	for i := range o.Items {
		if err := o.Items[i].Validate(); err != nil {
			return err
		}
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// Validate enforces line-item invariants.
func (it *OrderItem) Validate() error {
	if it.VariantID <= 0 {
		return ErrInvalidVariant
	}
	if it.Quantity < 1 || it.Quantity > MaxQuantityPerItem {
		return ErrInvalidQuantity
	}
	return nil
}

// ItemsTotal sums line-item subtotals in exact decimal arithmetic.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal)
	}
	return total
}

// Price fixes the delivery fee and total at creation time. The total is
// never recomputed from live catalog prices afterwards.
func (o *Order) Price(deliveryFee decimal.Decimal) error {
	if deliveryFee.IsNegative() {
		return ErrNegativeDeliveryFee
	}
	o.DeliveryFee = deliveryFee
	o.TotalPrice = o.ItemsTotal().Add(deliveryFee)
	if o.Status == "" {
		o.Status = StatusPreparing
	}
	return nil
}

// Cancel transitions the order to cancelled. Only preparing and in-delivery
// orders may be cancelled.
func (o *Order) Cancel() error {
	if o.Status != StatusPreparing && o.Status != StatusInDelivery {
		return ErrTerminalTransition
	}
	o.Status = StatusCancelled
	return nil
}

// ChangeStatus applies an administrative status update. Terminal states stay
// terminal for admins as well.
func (o *Order) ChangeStatus(next Status) error {
	if !isValidStatus(next) {
		return ErrInvalidStatus
	}
	if o.terminal() && next != o.Status {
		return ErrTerminalTransition
	}
	o.Status = next
	return nil
}

// Active reports whether the order is still in flight.
func (o *Order) Active() bool {
	return o.Status == StatusPreparing || o.Status == StatusInDelivery
}

func (o *Order) terminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}

// ParseStatus validates a wire-format status value.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !isValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ActiveStatuses lists the non-terminal states.
func ActiveStatuses() []Status {
	return []Status{StatusPreparing, StatusInDelivery}
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPreparing, StatusInDelivery, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}
