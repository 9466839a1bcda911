package ports

import (
	"context"

	ordersdomain "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
)

// OrderSource reads the orders placed during a shift. The orders repository
// satisfies it directly.
type OrderSource interface {
	ListByShift(ctx context.Context, shiftID int64) ([]*ordersdomain.Order, error)
}

// PaymentDirectory resolves payment method identifiers to display names for
// the report breakdown. Unknown identifiers simply stay unnamed.
type PaymentDirectory interface {
	PaymentNames(ctx context.Context) (map[int64]string, error)
}
