package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	userdomain "github.com/Apurer/storefront-api/internal/domains/users/domain"
	userports "github.com/Apurer/storefront-api/internal/domains/users/ports"
)

const tracerName = "github.com/Apurer/storefront-api/internal/domains/users/adapters/observability/service"

// Service decorates the users service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core users service.
func New(inner userports.Service, opts ...Option) userports.Service {
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

func (s *Service) Register(ctx context.Context, user *userdomain.User) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Register")
	defer span.End()
	result, err := s.inner.Register(ctx, user)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register user")
	}
	s.metrics.recordRegistered(ctx)
	s.logInfo(ctx, "user registered", slog.String("user.email", result.Email))
	return result, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.GetByEmail")
	defer span.End()
	return s.inner.GetByEmail(ctx, email)
}

func (s *Service) Login(ctx context.Context, email, password string) (*userdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Login")
	defer span.End()
	session, err := s.inner.Login(ctx, email, password)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "login failed")
	}
	s.metrics.recordLogin(ctx)
	s.logInfo(ctx, "user logged in",
		slog.String("user.email", session.Email), slog.Bool("user.admin", session.IsAdmin))
	return session, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Logout")
	defer span.End()
	if err := s.inner.Logout(ctx, token); err != nil {
		return s.handleError(ctx, span, err, "logout failed")
	}
	return nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (*userdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Authenticate")
	defer span.End()
	session, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		span.SetAttributes(attribute.Bool("session.valid", false))
		return nil, err
	}
	span.SetAttributes(attribute.Bool("session.valid", true))
	return session, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
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

type serviceMetrics struct {
	registered metric.Int64Counter
	logins     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registered, _ := m.Int64Counter("users.service.registered", metric.WithDescription("Number of accounts registered"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Number of successful logins"))
	return serviceMetrics{registered: registered, logins: logins}
}

func (m serviceMetrics) recordRegistered(ctx context.Context) {
	if m.registered != nil {
		m.registered.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context) {
	if m.logins != nil {
		m.logins.Add(ctx, 1)
	}
}

var _ userports.Service = (*Service)(nil)
