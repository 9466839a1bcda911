package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	openapitypes "github.com/oapi-codegen/runtime/types"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/domain"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory shift store.
type Repository struct {
	mu     sync.RWMutex
	shifts map[int64]*domain.Shift
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{shifts: map[int64]*domain.Shift{}}
}

// Create stores a shift, rejecting duplicates on (date, label).
func (r *Repository) Create(_ context.Context, shift *domain.Shift) (*domain.Shift, error) {
	if shift == nil {
		return nil, errors.New("shift is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.shifts {
		if sameDate(existing.Date, shift.Date) && existing.Label == shift.Label {
			return nil, ports.ErrDuplicate
		}
	}
	clone := *shift
	r.nextID++
	clone.ID = r.nextID
	r.shifts[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	shift, ok := r.shifts[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *shift
	return &clone, nil
}

func (r *Repository) List(_ context.Context, skip, limit int) ([]*domain.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.collect(func(*domain.Shift) bool { return true })
	if skip >= len(list) {
		return []*domain.Shift{}, nil
	}
	list = list[skip:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *Repository) ListByDate(_ context.Context, date openapitypes.Date) ([]*domain.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(s *domain.Shift) bool { return sameDate(s.Date, date) }), nil
}

func (r *Repository) OpenExists(_ context.Context, date openapitypes.Date, label string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, shift := range r.shifts {
		if sameDate(shift.Date, date) && shift.Label == label && !shift.Ended() {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) Update(_ context.Context, id int64, apply func(*domain.Shift) error) (*domain.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shift, ok := r.shifts[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *shift
	if err := apply(&clone); err != nil {
		return nil, err
	}
	r.shifts[id] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) collect(match func(*domain.Shift) bool) []*domain.Shift {
	list := make([]*domain.Shift, 0, len(r.shifts))
	for _, shift := range r.shifts {
		if match(shift) {
			clone := *shift
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date.Time.Equal(list[j].Date.Time) {
			return list[i].ID > list[j].ID
		}
		return list[i].Date.Time.After(list[j].Date.Time)
	})
	return list
}

func sameDate(a, b openapitypes.Date) bool {
	return a.Time.Format("2006-01-02") == b.Time.Format("2006-01-02")
}
