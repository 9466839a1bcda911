package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/application/types"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. Order numbering is
// serialized by the repository mutex, mirroring the per-shift lock the
// Postgres adapter takes.
type Repository struct {
	mu         sync.RWMutex
	orders     map[int64]*domain.Order
	nextID     int64
	nextItemID int64
	directory  *Directory
}

// NewRepository builds an empty repository. The directory, when present, is
// used to resolve catalog names on projections.
func NewRepository(directory *Directory) *Repository {
	return &Repository{orders: map[int64]*domain.Order{}, directory: directory}
}

// Create assigns the next shift-scoped order number and stores the aggregate
// with its items as one unit.
func (r *Repository) Create(_ context.Context, order *domain.Order) (*types.OrderProjection, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	if err := clone.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	max := 0
	for _, existing := range r.orders {
		if existing.ShiftID == clone.ShiftID && existing.OrderNumber > max {
			max = existing.OrderNumber
		}
	}
	clone.OrderNumber = max + 1
	r.nextID++
	clone.ID = r.nextID
	for i := range clone.Items {
		r.nextItemID++
		clone.Items[i].ID = r.nextItemID
		clone.Items[i].OrderID = clone.ID
	}
	r.orders[clone.ID] = clone
	return r.project(clone), nil
}

// GetByID returns one order projection.
func (r *Repository) GetByID(_ context.Context, id int64) (*types.OrderProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.project(cloneOrder(order)), nil
}

// List returns orders newest first.
func (r *Repository) List(_ context.Context, skip, limit int) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return page(r.collect(func(*domain.Order) bool { return true }), skip, limit), nil
}

// ListByUser returns one customer's orders newest first.
func (r *Repository) ListByUser(_ context.Context, userID uuid.UUID, skip, limit int) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return page(r.collect(func(o *domain.Order) bool { return o.UserID == userID }), skip, limit), nil
}

// ListByUserAndStatuses filters one customer's orders by status set.
func (r *Repository) ListByUserAndStatuses(_ context.Context, userID uuid.UUID, statuses []domain.Status, skip, limit int) ([]*domain.Order, error) {
	wanted := map[domain.Status]bool{}
	for _, status := range statuses {
		wanted[status] = true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return page(r.collect(func(o *domain.Order) bool {
		return o.UserID == userID && wanted[o.Status]
	}), skip, limit), nil
}

// ListByShift returns every order in a shift, newest first.
func (r *Repository) ListByShift(_ context.Context, shiftID int64) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(o *domain.Order) bool { return o.ShiftID == shiftID }), nil
}

// Transition applies a mutation to a stored order under the repository lock.
func (r *Repository) Transition(_ context.Context, id int64, apply func(*domain.Order) error) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := cloneOrder(order)
	if err := apply(clone); err != nil {
		return nil, err
	}
	r.orders[id] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) collect(match func(*domain.Order) bool) []*domain.Order {
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if match(order) {
			list = append(list, cloneOrder(order))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].PlacedAt.Equal(list[j].PlacedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].PlacedAt.After(list[j].PlacedAt)
	})
	return list
}

func (r *Repository) project(order *domain.Order) *types.OrderProjection {
	projection := &types.OrderProjection{Order: order, Items: make([]types.OrderItemView, 0, len(order.Items))}
	for _, item := range order.Items {
		view := types.OrderItemView{Item: item}
		if r.directory != nil {
			view.ProductName, view.SizeName, view.TypeName = r.directory.variantNames(item.VariantID)
		}
		projection.Items = append(projection.Items, view)
	}
	return projection
}

func page(list []*domain.Order, skip, limit int) []*domain.Order {
	if skip >= len(list) {
		return []*domain.Order{}
	}
	list = list[skip:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = append([]domain.OrderItem(nil), order.Items...)
	return &clone
}
