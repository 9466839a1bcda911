package application

import (
	"context"
	"fmt"
	"time"

	openapitypes "github.com/oapi-codegen/runtime/types"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application/types"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/domain"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/ports"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 500
)

// Collaborators groups the read-side dependencies of the shift service.
type Collaborators struct {
	Orders   ports.OrderSource
	Payments ports.PaymentDirectory
}

// Service implements the shifts bounded context use cases.
type Service struct {
	repo ports.Repository
	deps Collaborators
	now  func() time.Time
}

func NewService(repo ports.Repository, deps Collaborators) *Service {
	return &Service{repo: repo, deps: deps, now: time.Now}
}

// WithClock overrides the timestamp source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// StartShift opens a new shift. A second open shift for the same date and
// label is rejected; the unique index on (date, label) backs this check
// against races.
func (s *Service) StartShift(ctx context.Context, input types.StartShiftInput) (*domain.Shift, error) {
	startTime := input.StartTime
	if startTime == "" {
		startTime = s.now().Format(domain.TimeOfDayLayout)
	}
	shift, err := domain.NewShift(input.Date, input.Label, startTime)
	if err != nil {
		return nil, mapError(err)
	}
	open, err := s.repo.OpenExists(ctx, shift.Date, shift.Label)
	if err != nil {
		return nil, mapError(err)
	}
	if open {
		return nil, mapError(fmt.Errorf("%w: open shift for %s %s", ErrShiftConflict, shift.Date.Format("2006-01-02"), shift.Label))
	}
	created, err := s.repo.Create(ctx, shift)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// EndShift closes a shift. An empty end time means now.
func (s *Service) EndShift(ctx context.Context, input types.EndShiftInput) (*domain.Shift, error) {
	endTime := input.EndTime
	if endTime == "" {
		endTime = s.now().Format(domain.TimeOfDayLayout)
	}
	shift, err := s.repo.Update(ctx, input.ShiftID, func(sh *domain.Shift) error {
		return sh.End(endTime)
	})
	if err != nil {
		return nil, mapError(err)
	}
	return shift, nil
}

// ToggleActive flips a shift's active flag.
func (s *Service) ToggleActive(ctx context.Context, id int64) (*domain.Shift, error) {
	shift, err := s.repo.Update(ctx, id, func(sh *domain.Shift) error {
		return sh.ToggleActive()
	})
	if err != nil {
		return nil, mapError(err)
	}
	return shift, nil
}

// GetShift loads one shift.
func (s *Service) GetShift(ctx context.Context, id int64) (*domain.Shift, error) {
	shift, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return shift, nil
}

// ListShifts returns shifts, most recent first.
func (s *Service) ListShifts(ctx context.Context, page types.PageInput) ([]*domain.Shift, error) {
	skip, limit := normalizePage(page)
	shifts, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, mapError(err)
	}
	return shifts, nil
}

// ListShiftsByDate returns all shifts on one calendar date.
func (s *Service) ListShiftsByDate(ctx context.Context, date openapitypes.Date) ([]*domain.Shift, error) {
	shifts, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, mapError(err)
	}
	return shifts, nil
}

// Report aggregates all of a shift's orders into the shift summary. The shift
// may still be open; its duration is then provisional.
func (s *Service) Report(ctx context.Context, shiftID int64) (*types.ShiftReport, error) {
	shift, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, mapError(err)
	}
	orders, err := s.deps.Orders.ListByShift(ctx, shiftID)
	if err != nil {
		return nil, mapError(err)
	}
	names := map[int64]string{}
	if s.deps.Payments != nil {
		names, err = s.deps.Payments.PaymentNames(ctx)
		if err != nil {
			return nil, mapError(err)
		}
	}
	report, err := buildReport(shift, orders, names, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	return report, nil
}

func normalizePage(page types.PageInput) (skip, limit int) {
	skip = page.Skip
	if skip < 0 {
		skip = 0
	}
	limit = page.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return skip, limit
}

var _ ports.Service = (*Service)(nil)
