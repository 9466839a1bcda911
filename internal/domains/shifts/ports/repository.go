package ports

import (
	"context"
	"errors"

	openapitypes "github.com/oapi-codegen/runtime/types"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/domain"
)

var (
	ErrNotFound = errors.New("shift not found")
	// ErrDuplicate is returned when a shift with the same date and label is
	// already on record.
	ErrDuplicate = errors.New("shift already exists for date and label")
)

// Repository persists shifts. Create enforces one shift per (date, label).
type Repository interface {
	Create(ctx context.Context, shift *domain.Shift) (*domain.Shift, error)
	GetByID(ctx context.Context, id int64) (*domain.Shift, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Shift, error)
	ListByDate(ctx context.Context, date openapitypes.Date) ([]*domain.Shift, error)
	// OpenExists reports whether any shift for the date and label is still
	// open (no end time).
	OpenExists(ctx context.Context, date openapitypes.Date, label string) (bool, error)
	// Update loads the shift, applies the mutation, and persists the result
	// atomically. Apply errors roll back.
	Update(ctx context.Context, id int64, apply func(*domain.Shift) error) (*domain.Shift, error)
}
