package application

import (
	"errors"
	"fmt"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/ports"
)

// Application error kinds. Every failure surfaced by the service wraps exactly
// one of these, so adapters can map them to transport responses without
// inspecting internals.
var (
	ErrInvalidInput       = errors.New("invalid order input")
	ErrUserNotFound       = errors.New("user not found")
	ErrAddressNotFound    = errors.New("address not found")
	ErrVariantNotFound    = errors.New("variant not found")
	ErrVariantUnavailable = errors.New("variant unavailable")
	ErrOrderNotFound      = errors.New("order not found")
	ErrShiftNotFound      = errors.New("shift not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrConflict           = errors.New("conflicting concurrent update")
	ErrStorage            = errors.New("storage failure")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrAddressNotFound),
		errors.Is(err, ErrVariantNotFound),
		errors.Is(err, ErrVariantUnavailable),
		errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrShiftNotFound),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrConflict):
		return err
	case errors.Is(err, domain.ErrTerminalTransition):
		return fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	case errors.Is(err, domain.ErrInvalidUser),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrInvalidPayment),
		errors.Is(err, domain.ErrInvalidShift),
		errors.Is(err, domain.ErrInvalidVariant),
		errors.Is(err, domain.ErrEmptyItems),
		errors.Is(err, domain.ErrTooManyItems),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrNegativeDeliveryFee):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ports.ErrUserNotFound):
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	case errors.Is(err, ports.ErrAddressNotFound):
		return fmt.Errorf("%w: %w", ErrAddressNotFound, err)
	case errors.Is(err, ports.ErrVariantNotFound):
		return fmt.Errorf("%w: %w", ErrVariantNotFound, err)
	case errors.Is(err, ports.ErrShiftNotFound):
		return fmt.Errorf("%w: %w", ErrShiftNotFound, err)
	case errors.Is(err, ports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	case errors.Is(err, ports.ErrNumberingConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, ports.ErrInvalidReference):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		// Storage and driver errors stay internal; callers see a stable kind.
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
}
