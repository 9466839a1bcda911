package ports

import (
	"context"

	openapitypes "github.com/oapi-codegen/runtime/types"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application/types"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/domain"
)

// Service exposes the shifts bounded context use cases to adapters.
type Service interface {
	StartShift(ctx context.Context, input types.StartShiftInput) (*domain.Shift, error)
	EndShift(ctx context.Context, input types.EndShiftInput) (*domain.Shift, error)
	ToggleActive(ctx context.Context, id int64) (*domain.Shift, error)
	GetShift(ctx context.Context, id int64) (*domain.Shift, error)
	ListShifts(ctx context.Context, page types.PageInput) ([]*domain.Shift, error)
	ListShiftsByDate(ctx context.Context, date openapitypes.Date) ([]*domain.Shift, error)
	Report(ctx context.Context, shiftID int64) (*types.ShiftReport, error)
}

// WorkflowOrchestrator runs the durable shift-closing flow: end the shift,
// then build its report. Implementations fall back to the plain service when
// no workflow engine is configured.
type WorkflowOrchestrator interface {
	CloseShift(ctx context.Context, input types.EndShiftInput) (*types.ShiftReport, error)
}
