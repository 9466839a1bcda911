package observability

import (
	"context"
	"log/slog"

	openapitypes "github.com/oapi-codegen/runtime/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application/types"
	shiftdomain "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/domain"
	shiftports "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/ports"
)

const tracerName = "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/adapters/observability/service"

// Service decorates the shift service with tracing, logging, and metrics.
type Service struct {
	inner   shiftports.Service
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

// New wraps the core shift service.
func New(inner shiftports.Service, opts ...Option) shiftports.Service {
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

func (s *Service) StartShift(ctx context.Context, input types.StartShiftInput) (*shiftdomain.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "ShiftService.StartShift",
		trace.WithAttributes(
			attribute.String("shift.date", input.Date.Format("2006-01-02")),
			attribute.String("shift.label", input.Label),
		))
	defer span.End()

	s.logInfo(ctx, "starting shift", slog.String("shift.date", input.Date.Format("2006-01-02")), slog.String("shift.label", input.Label))
	result, err := s.inner.StartShift(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to start shift", slog.String("shift.label", input.Label))
	}
	span.SetAttributes(attribute.Int64("shift.id", result.ID))
	s.metrics.recordStarted(ctx)
	s.logInfo(ctx, "shift started", slog.Int64("shift.id", result.ID))
	return result, nil
}

func (s *Service) EndShift(ctx context.Context, input types.EndShiftInput) (*shiftdomain.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "ShiftService.EndShift", trace.WithAttributes(attribute.Int64("shift.id", input.ShiftID)))
	defer span.End()

	s.logInfo(ctx, "ending shift", slog.Int64("shift.id", input.ShiftID))
	result, err := s.inner.EndShift(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to end shift", slog.Int64("shift.id", input.ShiftID))
	}
	s.metrics.recordEnded(ctx)
	s.logInfo(ctx, "shift ended", slog.Int64("shift.id", result.ID))
	return result, nil
}

func (s *Service) ToggleActive(ctx context.Context, id int64) (*shiftdomain.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "ShiftService.ToggleActive", trace.WithAttributes(attribute.Int64("shift.id", id)))
	defer span.End()

	result, err := s.inner.ToggleActive(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to toggle shift", slog.Int64("shift.id", id))
	}
	span.SetAttributes(attribute.Bool("shift.active", result.IsActive))
	s.logInfo(ctx, "shift toggled", slog.Int64("shift.id", id), slog.Bool("shift.active", result.IsActive))
	return result, nil
}

func (s *Service) GetShift(ctx context.Context, id int64) (*shiftdomain.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "ShiftService.GetShift", trace.WithAttributes(attribute.Int64("shift.id", id)))
	defer span.End()

	result, err := s.inner.GetShift(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load shift", slog.Int64("shift.id", id))
	}
	return result, nil
}

func (s *Service) ListShifts(ctx context.Context, page types.PageInput) ([]*shiftdomain.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "ShiftService.ListShifts")
	defer span.End()

	result, err := s.inner.ListShifts(ctx, page)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list shifts")
	}
	span.SetAttributes(attribute.Int("shift.count", len(result)))
	return result, nil
}

func (s *Service) ListShiftsByDate(ctx context.Context, date openapitypes.Date) ([]*shiftdomain.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "ShiftService.ListShiftsByDate",
		trace.WithAttributes(attribute.String("shift.date", date.Format("2006-01-02"))))
	defer span.End()

	result, err := s.inner.ListShiftsByDate(ctx, date)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list shifts by date")
	}
	span.SetAttributes(attribute.Int("shift.count", len(result)))
	return result, nil
}

func (s *Service) Report(ctx context.Context, shiftID int64) (*types.ShiftReport, error) {
	ctx, span := s.tracer.Start(ctx, "ShiftService.Report", trace.WithAttributes(attribute.Int64("shift.id", shiftID)))
	defer span.End()

	s.logInfo(ctx, "building shift report", slog.Int64("shift.id", shiftID))
	result, err := s.inner.Report(ctx, shiftID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build shift report", slog.Int64("shift.id", shiftID))
	}
	span.SetAttributes(
		attribute.Int("report.orders", result.TotalOrders),
		attribute.String("report.total_sales", result.TotalSales.String()),
	)
	s.metrics.recordReport(ctx)
	s.logInfo(ctx, "shift report built",
		slog.Int64("shift.id", shiftID),
		slog.Int("report.orders", result.TotalOrders),
		slog.String("report.total_sales", result.TotalSales.String()))
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
	shiftsStarted metric.Int64Counter
	shiftsEnded   metric.Int64Counter
	reportsBuilt  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	started, _ := m.Int64Counter("shifts.service.started", metric.WithDescription("Number of shifts started"))
	ended, _ := m.Int64Counter("shifts.service.ended", metric.WithDescription("Number of shifts ended"))
	reports, _ := m.Int64Counter("shifts.service.reports_built", metric.WithDescription("Number of shift reports built"))
	return serviceMetrics{shiftsStarted: started, shiftsEnded: ended, reportsBuilt: reports}
}

func (m serviceMetrics) recordStarted(ctx context.Context) {
	if m.shiftsStarted != nil {
		m.shiftsStarted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordEnded(ctx context.Context) {
	if m.shiftsEnded != nil {
		m.shiftsEnded.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordReport(ctx context.Context) {
	if m.reportsBuilt != nil {
		m.reportsBuilt.Add(ctx, 1)
	}
}

var _ shiftports.Service = (*Service)(nil)
