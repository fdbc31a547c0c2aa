package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	paymentsports "github.com/Apurer/storefront-api/internal/domains/payments/ports"
)

const tracerName = "github.com/Apurer/storefront-api/internal/domains/payments/adapters/observability/reconciler"

// Reconciler decorates the payment reconciler with tracing, logging, and
// metrics.
type Reconciler struct {
	inner   paymentsports.Reconciler
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics reconcilerMetrics
}

type Option func(*Reconciler)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(r *Reconciler) {
		r.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(r *Reconciler) {
		r.metrics = newReconcilerMetrics(m)
	}
}

// New wraps the core reconciler.
func New(inner paymentsports.Reconciler, opts ...Option) paymentsports.Reconciler {
	r := &Reconciler{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newReconcilerMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.tracer == nil {
		r.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return r
}

func (r *Reconciler) Reconcile(ctx context.Context, payload []byte, signatureHeader string) (*paymentsports.ReconcileResult, error) {
	ctx, span := r.tracer.Start(ctx, "PaymentReconciler.Reconcile",
		trace.WithAttributes(attribute.Int("webhook.payload_bytes", len(payload))))
	defer span.End()

	result, err := r.inner.Reconcile(ctx, payload, signatureHeader)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, paymentsports.ErrInvalidSignature) {
			r.metrics.recordRejected(ctx)
			r.logWarn(ctx, "webhook signature rejected")
			return nil, err
		}
		r.logError(ctx, "webhook reconciliation failed", err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("webhook.event_id", result.EventID),
		attribute.String("webhook.event_type", result.EventType),
		attribute.String("webhook.outcome", string(result.Outcome)),
	)
	r.metrics.recordOutcome(ctx, result.Outcome)
	attrs := []slog.Attr{
		slog.String("event.id", result.EventID),
		slog.String("event.type", result.EventType),
		slog.String("outcome", string(result.Outcome)),
	}
	if result.OrderID != "" {
		attrs = append(attrs, slog.String("order.id", result.OrderID))
	}
	if result.Outcome == paymentsports.OutcomeUnmatched {
		r.logWarn(ctx, "webhook event matched no order", attrs...)
	} else {
		r.logInfo(ctx, "webhook event reconciled", attrs...)
	}
	return result, nil
}

func (r *Reconciler) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if r.logger == nil {
		return
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (r *Reconciler) logWarn(ctx context.Context, msg string, attrs ...slog.Attr) {
	if r.logger == nil {
		return
	}
	r.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

func (r *Reconciler) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if r.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	r.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type reconcilerMetrics struct {
	outcomes metric.Int64Counter
	rejected metric.Int64Counter
}

func newReconcilerMetrics(m metric.Meter) reconcilerMetrics {
	if m == nil {
		return reconcilerMetrics{}
	}
	outcomes, _ := m.Int64Counter("payments.reconciler.events", metric.WithDescription("Webhook events by reconciliation outcome"))
	rejected, _ := m.Int64Counter("payments.reconciler.signature_rejections", metric.WithDescription("Webhook deliveries rejected for bad signatures"))
	return reconcilerMetrics{outcomes: outcomes, rejected: rejected}
}

func (m reconcilerMetrics) recordOutcome(ctx context.Context, outcome paymentsports.Outcome) {
	if m.outcomes != nil {
		m.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(outcome))))
	}
}

func (m reconcilerMetrics) recordRejected(ctx context.Context) {
	if m.rejected != nil {
		m.rejected.Add(ctx, 1)
	}
}

var _ paymentsports.Reconciler = (*Reconciler)(nil)
