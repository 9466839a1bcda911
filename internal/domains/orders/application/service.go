package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/application/types"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/ports"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 500
)

// Collaborators bundles the external lookup contracts the order core reads
// from. Catalog and zone data is owned elsewhere; the core only quotes it.
type Collaborators struct {
	Users   ports.UserDirectory
	Zones   ports.ZoneLookup
	Catalog ports.CatalogLookup
	Shifts  ports.ShiftDirectory
}

// Service orchestrates the orders bounded context use cases.
type Service struct {
	repo ports.Repository
	deps Collaborators
	now  func() time.Time
}

// NewService wires the orders service with its repository and collaborators.
func NewService(repo ports.Repository, deps Collaborators) *Service {
	return &Service{repo: repo, deps: deps, now: time.Now}
}

// WithClock overrides the creation timestamp source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// CreateOrder validates the request, prices every line item from the catalog,
// and persists the order header plus items as one atomic unit. All validation
// failures are detected before any write.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, mapError(err)
	}
	if err := s.deps.Users.UserExists(ctx, input.UserID); err != nil {
		return nil, mapError(err)
	}
	if err := s.deps.Shifts.ShiftExists(ctx, input.ShiftID); err != nil {
		return nil, mapError(err)
	}
	deliveryCost, err := s.deps.Zones.DeliveryCost(ctx, input.UserID, input.AddressID)
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, requested := range input.Items {
		quote, err := s.deps.Catalog.Variant(ctx, requested.VariantID)
		if err != nil {
			return nil, mapError(err)
		}
		if !quote.Available {
			return nil, mapError(fmt.Errorf("%w: variant %d", ErrVariantUnavailable, requested.VariantID))
		}
		items = append(items, domain.OrderItem{
			VariantID: requested.VariantID,
			Quantity:  requested.Quantity,
			UnitPrice: quote.UnitPrice,
			Subtotal:  quote.UnitPrice.Mul(decimalFromQuantity(requested.Quantity)),
			Plain:     requested.Plain,
		})
	}

	order := &domain.Order{
		UserID:        input.UserID,
		AddressID:     input.AddressID,
		PaymentID:     input.PaymentID,
		ShiftID:       input.ShiftID,
		PlacedAt:      s.now().UTC(),
		CustomerNotes: input.CustomerNotes,
		ExternalNotes: input.ExternalNotes,
		Items:         items,
	}
	if err := order.Price(deliveryCost); err != nil {
		return nil, mapError(err)
	}
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// GetOrder loads one order with its items and resolved catalog names.
func (s *Service) GetOrder(ctx context.Context, id int64) (*types.OrderProjection, error) {
	projection, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return projection, nil
}

// ListOrders returns recent orders, newest first.
func (s *Service) ListOrders(ctx context.Context, page types.PageInput) ([]*domain.Order, error) {
	skip, limit := normalizePage(page)
	orders, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

// ListUserOrders returns a customer's orders, newest first.
func (s *Service) ListUserOrders(ctx context.Context, userID uuid.UUID, page types.PageInput) ([]*domain.Order, error) {
	if err := s.deps.Users.UserExists(ctx, userID); err != nil {
		return nil, mapError(err)
	}
	skip, limit := normalizePage(page)
	orders, err := s.repo.ListByUser(ctx, userID, skip, limit)
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

// ListUserActiveOrders returns the customer's in-flight orders.
func (s *Service) ListUserActiveOrders(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	if err := s.deps.Users.UserExists(ctx, userID); err != nil {
		return nil, mapError(err)
	}
	orders, err := s.repo.ListByUserAndStatuses(ctx, userID, domain.ActiveStatuses(), 0, 0)
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

// ListUserOrdersByStatus filters a customer's orders by a single status.
func (s *Service) ListUserOrdersByStatus(ctx context.Context, userID uuid.UUID, status domain.Status, page types.PageInput) ([]*domain.Order, error) {
	if _, err := domain.ParseStatus(string(status)); err != nil {
		return nil, mapError(err)
	}
	if err := s.deps.Users.UserExists(ctx, userID); err != nil {
		return nil, mapError(err)
	}
	skip, limit := normalizePage(page)
	orders, err := s.repo.ListByUserAndStatuses(ctx, userID, []domain.Status{status}, skip, limit)
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

// ListShiftOrders returns every order placed during a shift, newest first.
func (s *Service) ListShiftOrders(ctx context.Context, shiftID int64, page types.PageInput) ([]*domain.Order, error) {
	if err := s.deps.Shifts.ShiftExists(ctx, shiftID); err != nil {
		return nil, mapError(err)
	}
	orders, err := s.repo.ListByShift(ctx, shiftID)
	if err != nil {
		return nil, mapError(err)
	}
	skip, limit := normalizePage(page)
	if skip >= len(orders) {
		return []*domain.Order{}, nil
	}
	orders = orders[skip:]
	if limit < len(orders) {
		orders = orders[:limit]
	}
	return orders, nil
}

// CancelOrder applies a customer-initiated cancellation. The order must belong
// to the requesting user and still be in flight.
func (s *Service) CancelOrder(ctx context.Context, input types.CancelOrderInput) (*domain.Order, error) {
	order, err := s.repo.Transition(ctx, input.OrderID, func(o *domain.Order) error {
		if o.UserID != input.UserID {
			// Not owned reads the same as not found; ownership is not leaked.
			return ports.ErrNotFound
		}
		return o.Cancel()
	})
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// UpdateOrderStatus applies an administrative status update.
func (s *Service) UpdateOrderStatus(ctx context.Context, input types.UpdateStatusInput) (*domain.Order, error) {
	order, err := s.repo.Transition(ctx, input.OrderID, func(o *domain.Order) error {
		return o.ChangeStatus(input.Status)
	})
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

func validateCreateInput(input types.CreateOrderInput) error {
	if input.UserID == uuid.Nil {
		return domain.ErrInvalidUser
	}
	if input.AddressID <= 0 {
		return domain.ErrInvalidAddress
	}
	if input.PaymentID <= 0 {
		return domain.ErrInvalidPayment
	}
	if input.ShiftID <= 0 {
		return domain.ErrInvalidShift
	}
	if len(input.Items) == 0 {
		return domain.ErrEmptyItems
	}
	if len(input.Items) > domain.MaxItemsPerOrder {
		return domain.ErrTooManyItems
	}
	for _, item := range input.Items {
		if item.VariantID <= 0 {
			return domain.ErrInvalidVariant
		}
		if item.Quantity < 1 || item.Quantity > domain.MaxQuantityPerItem {
			return domain.ErrInvalidQuantity
		}
	}
	return nil
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

func decimalFromQuantity(q int32) decimal.Decimal {
	return decimal.NewFromInt32(q)
}

var _ ports.Service = (*Service)(nil)
