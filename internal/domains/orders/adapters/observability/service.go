package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	orderstypes "github.com/Apurer/storefront-api/internal/domains/orders/application/types"
	ordersdomain "github.com/Apurer/storefront-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/storefront-api/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/storefront-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
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

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
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

func (s *Service) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(attribute.Int("order.items", len(input.Items)), attribute.Bool("order.digital", input.IsDigital)))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("customer.email", input.Customer.Email))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order")
	}
	span.SetAttributes(attribute.String("order.id", result.ID))
	s.metrics.recordPlaced(ctx, result.Status)
	s.logInfo(ctx, "order created", slog.String("order.id", result.ID), slog.Float64("order.total", result.Total))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id string, requester orderstypes.Identity) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id, requester)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return result, nil
}

func (s *Service) TrackOrder(ctx context.Context, id string) (*orderstypes.TrackingProjection, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.TrackOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.TrackOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to track order", slog.String("order.id", id))
	}
	span.SetAttributes(attribute.String("order.status", string(result.Status)))
	return result, nil
}

func (s *Service) GetGuestOrder(ctx context.Context, id, email string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetGuestOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.GetGuestOrder(ctx, id, email)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed guest order lookup", slog.String("order.id", id))
	}
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, email string) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx, email)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customer orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) ListAllOrders(ctx context.Context, status ordersdomain.Status) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListAllOrders",
		trace.WithAttributes(attribute.String("orders.filter", string(status))))
	defer span.End()

	result, err := s.inner.ListAllOrders(ctx, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, input orderstypes.UpdateStatusInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateStatus",
		trace.WithAttributes(attribute.String("order.id", input.OrderID), attribute.String("order.next_status", string(input.Status))))
	defer span.End()

	s.logInfo(ctx, "updating order status", slog.String("order.id", input.OrderID), slog.String("status", string(input.Status)))
	result, err := s.inner.UpdateStatus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.String("order.id", input.OrderID))
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "order status updated", slog.String("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) ConfirmPayment(ctx context.Context, orderID string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ConfirmPayment", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	result, err := s.inner.ConfirmPayment(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to confirm payment", slog.String("order.id", orderID))
	}
	s.logInfo(ctx, "payment confirmed", slog.String("order.id", result.ID))
	return result, nil
}

func (s *Service) CreatePaymentIntent(ctx context.Context, input orderstypes.CreateIntentInput) (*orderstypes.PaymentIntent, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreatePaymentIntent",
		trace.WithAttributes(attribute.Float64("payment.amount", input.Amount)))
	defer span.End()

	result, err := s.inner.CreatePaymentIntent(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create payment intent")
	}
	s.metrics.recordIntent(ctx)
	s.logInfo(ctx, "payment intent created", slog.String("payment.intent_id", result.IntentID))
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
	ordersPlaced      metric.Int64Counter
	statusTransitions metric.Int64Counter
	intentsCreated    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders created"))
	statusTransitions, _ := m.Int64Counter("orders.service.status_transitions", metric.WithDescription("Number of accepted status transitions"))
	intentsCreated, _ := m.Int64Counter("orders.service.payment_intents_created", metric.WithDescription("Number of payment intents created"))
	return serviceMetrics{ordersPlaced: ordersPlaced, statusTransitions: statusTransitions, intentsCreated: intentsCreated}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, status ordersdomain.Status) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status ordersdomain.Status) {
	if m.statusTransitions != nil {
		m.statusTransitions.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordIntent(ctx context.Context) {
	if m.intentsCreated != nil {
		m.intentsCreated.Add(ctx, 1)
	}
}

var _ ordersports.Service = (*Service)(nil)
