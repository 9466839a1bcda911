package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAddressNotFound = errors.New("address not found for user")
	ErrVariantNotFound = errors.New("variant not found")
	ErrShiftNotFound   = errors.New("shift not found")
)

// UserDirectory answers whether a customer exists.
type UserDirectory interface {
	// UserExists returns ErrUserNotFound when the user is unknown.
	UserExists(ctx context.Context, userID uuid.UUID) error
}

// ZoneLookup resolves a user-scoped address to its delivery-zone cost.
type ZoneLookup interface {
	// DeliveryCost returns ErrAddressNotFound when the address is missing or
	// not owned by the user.
	DeliveryCost(ctx context.Context, userID uuid.UUID, addressID int64) (decimal.Decimal, error)
}

// VariantQuote is the catalog answer for one variant at order time.
type VariantQuote struct {
	VariantID int64
	UnitPrice decimal.Decimal
	Available bool
}

// CatalogLookup resolves variants to price and availability.
type CatalogLookup interface {
	// Variant returns ErrVariantNotFound for unknown identifiers.
	Variant(ctx context.Context, variantID int64) (*VariantQuote, error)
}

// ShiftDirectory answers whether a shift exists.
type ShiftDirectory interface {
	// ShiftExists returns ErrShiftNotFound when the shift is unknown.
	ShiftExists(ctx context.Context, shiftID int64) error
}
