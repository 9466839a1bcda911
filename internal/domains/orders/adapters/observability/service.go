package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/application/types"
	orderdomain "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
	orderports "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/ports"
)

const tracerName = "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   orderports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner orderports.Service, opts ...Option) orderports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(
			attribute.String("order.user_id", input.UserID.String()),
			attribute.Int64("order.shift_id", input.ShiftID),
			attribute.Int("order.item_count", len(input.Items)),
		))
	defer span.End()

	s.logInfo(ctx, "creating order",
		slog.String("user.id", input.UserID.String()),
		slog.Int64("shift.id", input.ShiftID),
		slog.Int("item.count", len(input.Items)))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("user.id", input.UserID.String()))
	}
	span.SetAttributes(
		attribute.Int64("order.id", result.Order.ID),
		attribute.Int("order.number", result.Order.OrderNumber),
	)
	s.metrics.recordCreated(ctx, result.Order.Status)
	s.logInfo(ctx, "order created",
		slog.Int64("order.id", result.Order.ID),
		slog.Int("order.number", result.Order.OrderNumber),
		slog.String("order.total", result.Order.TotalPrice.String()))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*types.OrderProjection, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, page types.PageInput) ([]*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx, page)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) ListUserOrders(ctx context.Context, userID uuid.UUID, page types.PageInput) ([]*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListUserOrders", trace.WithAttributes(attribute.String("user.id", userID.String())))
	defer span.End()

	result, err := s.inner.ListUserOrders(ctx, userID, page)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list user orders", slog.String("user.id", userID.String()))
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) ListUserActiveOrders(ctx context.Context, userID uuid.UUID) ([]*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListUserActiveOrders", trace.WithAttributes(attribute.String("user.id", userID.String())))
	defer span.End()

	result, err := s.inner.ListUserActiveOrders(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list active orders", slog.String("user.id", userID.String()))
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) ListUserOrdersByStatus(ctx context.Context, userID uuid.UUID, status orderdomain.Status, page types.PageInput) ([]*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListUserOrdersByStatus",
		trace.WithAttributes(attribute.String("user.id", userID.String()), attribute.String("order.status", string(status))))
	defer span.End()

	result, err := s.inner.ListUserOrdersByStatus(ctx, userID, status, page)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders by status", slog.String("user.id", userID.String()))
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) ListShiftOrders(ctx context.Context, shiftID int64, page types.PageInput) ([]*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListShiftOrders", trace.WithAttributes(attribute.Int64("shift.id", shiftID)))
	defer span.End()

	result, err := s.inner.ListShiftOrders(ctx, shiftID, page)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list shift orders", slog.Int64("shift.id", shiftID))
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) CancelOrder(ctx context.Context, input types.CancelOrderInput) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CancelOrder",
		trace.WithAttributes(attribute.Int64("order.id", input.OrderID), attribute.String("user.id", input.UserID.String())))
	defer span.End()

	s.logInfo(ctx, "cancelling order", slog.Int64("order.id", input.OrderID), slog.String("user.id", input.UserID.String()))
	result, err := s.inner.CancelOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.Int64("order.id", input.OrderID))
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "order cancelled", slog.Int64("order.id", result.ID))
	return result, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, input types.UpdateStatusInput) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateOrderStatus",
		trace.WithAttributes(attribute.Int64("order.id", input.OrderID), attribute.String("order.status", string(input.Status))))
	defer span.End()

	s.logInfo(ctx, "updating order status", slog.Int64("order.id", input.OrderID), slog.String("status", string(input.Status)))
	result, err := s.inner.UpdateOrderStatus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.Int64("order.id", input.OrderID))
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "order status updated", slog.Int64("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersCreated     metric.Int64Counter
	statusTransitions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created"))
	statusTransitions, _ := m.Int64Counter("orders.service.status_transitions", metric.WithDescription("Number of order status transitions"))
	return serviceMetrics{ordersCreated: ordersCreated, statusTransitions: statusTransitions}
}

func (m serviceMetrics) recordCreated(ctx context.Context, status orderdomain.Status) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status orderdomain.Status) {
	if m.statusTransitions != nil {
		m.statusTransitions.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ orderports.Service = (*Service)(nil)
