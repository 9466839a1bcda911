package application

import (
	"errors"
	"fmt"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/domain"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/ports"
)

// Application error kinds for the shifts context.
var (
	ErrInvalidInput  = errors.New("invalid shift input")
	ErrShiftNotFound = errors.New("shift not found")
	ErrShiftConflict = errors.New("shift conflict")
	ErrShiftEnded    = errors.New("shift already ended")
	ErrStorage       = errors.New("storage failure")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrShiftNotFound),
		errors.Is(err, ErrShiftConflict),
		errors.Is(err, ErrShiftEnded):
		return err
	case errors.Is(err, domain.ErrAlreadyEnded):
		return fmt.Errorf("%w: %w", ErrShiftEnded, err)
	case errors.Is(err, domain.ErrInvalidLabel),
		errors.Is(err, domain.ErrInvalidTimeOfDay):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ports.ErrDuplicate):
		return fmt.Errorf("%w: %w", ErrShiftConflict, err)
	case errors.Is(err, ports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrShiftNotFound, err)
	default:
		// Storage and driver errors stay internal; callers see a stable kind.
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
}
