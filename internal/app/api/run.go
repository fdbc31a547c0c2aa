package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	storefrontserver "github.com/Apurer/storefront-api/server"

	automationclient "github.com/Apurer/storefront-api/internal/clients/http/automation"

	contactautomation "github.com/Apurer/storefront-api/internal/domains/contact/adapters/external/automation"
	contactmemory "github.com/Apurer/storefront-api/internal/domains/contact/adapters/memory"
	contactpostgres "github.com/Apurer/storefront-api/internal/domains/contact/adapters/persistence/postgres"
	contactapp "github.com/Apurer/storefront-api/internal/domains/contact/application"
	contactports "github.com/Apurer/storefront-api/internal/domains/contact/ports"

	ordersautomation "github.com/Apurer/storefront-api/internal/domains/orders/adapters/external/automation"
	ordersmemory "github.com/Apurer/storefront-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/storefront-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/storefront-api/internal/domains/orders/adapters/persistence/postgres"
	orderspromos "github.com/Apurer/storefront-api/internal/domains/orders/adapters/promos"
	ordersworkflows "github.com/Apurer/storefront-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/storefront-api/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/storefront-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/storefront-api/internal/domains/orders/ports"

	paymentsmemory "github.com/Apurer/storefront-api/internal/domains/payments/adapters/memory"
	paymentsobs "github.com/Apurer/storefront-api/internal/domains/payments/adapters/observability"
	paymentsorders "github.com/Apurer/storefront-api/internal/domains/payments/adapters/orders"
	paymentspostgres "github.com/Apurer/storefront-api/internal/domains/payments/adapters/persistence/postgres"
	paymentsredis "github.com/Apurer/storefront-api/internal/domains/payments/adapters/redis"
	paymentsstripe "github.com/Apurer/storefront-api/internal/domains/payments/adapters/stripe"
	paymentsapp "github.com/Apurer/storefront-api/internal/domains/payments/application"
	paymentsports "github.com/Apurer/storefront-api/internal/domains/payments/ports"

	promosmemory "github.com/Apurer/storefront-api/internal/domains/promos/adapters/memory"
	promospostgres "github.com/Apurer/storefront-api/internal/domains/promos/adapters/persistence/postgres"
	promosapp "github.com/Apurer/storefront-api/internal/domains/promos/application"
	promosports "github.com/Apurer/storefront-api/internal/domains/promos/ports"

	usermemory "github.com/Apurer/storefront-api/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/storefront-api/internal/domains/users/adapters/observability"
	userpostgres "github.com/Apurer/storefront-api/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/Apurer/storefront-api/internal/domains/users/application"
	userdomain "github.com/Apurer/storefront-api/internal/domains/users/domain"
	userports "github.com/Apurer/storefront-api/internal/domains/users/ports"

	platformmigrations "github.com/Apurer/storefront-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/storefront-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/storefront-api/internal/platform/postgres"
)

// Run boots the storefront HTTP API with observability, repositories, and
// the payment reconciler wired.
func Run(ctx context.Context) error {
	const serviceName = "storefront-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := platformmigrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	automation := automationclient.NewClient(nil)
	policy := ordersdomain.TransitionPolicy{PaymentFailedRetryable: cfg.PaymentRetryEnabled}

	orderRepo := buildOrderRepository(db, policy, logger)
	promoRepo := buildPromoRepository(db, logger)
	userRepo, sessionStore := buildUserStores(cfg, db, logger)
	contactRepo := buildContactRepository(db, logger)

	promoService := promosapp.NewService(promoRepo)

	var dispatcher ordersports.NotificationDispatcher
	orderNotifier := ordersautomation.NewNotifier(automation, cfg.AutomationOrderWebhook)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal unavailable, dispatching notifications inline", slog.String("error", err.Error()))
		dispatcher = ordersworkflows.NewInlineDispatcher(orderNotifier, logger)
	} else {
		defer temporalClient.Close()
		dispatcher = ordersworkflows.NewTemporalDispatcher(temporalClient, logger)
		logger.Info("Temporal notification workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	orderOpts := []ordersapp.Option{
		ordersapp.WithPromoQuoter(orderspromos.NewQuoter(promoService)),
		ordersapp.WithNotificationDispatcher(dispatcher),
	}
	if cfg.StripeSecretKey != "" {
		orderOpts = append(orderOpts, ordersapp.WithPaymentGateway(paymentsstripe.NewGateway(cfg.StripeSecretKey)))
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, payment intent creation disabled")
	}
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, orderOpts...),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	userOpts := []userapp.Option{}
	if cfg.SessionTTL > 0 {
		userOpts = append(userOpts, userapp.WithSessionTTL(cfg.SessionTTL))
	}
	userService := userobs.New(
		userapp.NewService(userRepo, sessionStore, userOpts...),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)

	contactOpts := []contactapp.Option{
		contactapp.WithSubscriberRepository(buildSubscriberRepository(db, logger)),
	}
	if cfg.AutomationContactWebhook != "" {
		contactOpts = append(contactOpts,
			contactapp.WithNotifier(contactautomation.NewNotifier(automation, cfg.AutomationContactWebhook)))
	}
	if cfg.AutomationNewsletterWebhook != "" {
		contactOpts = append(contactOpts,
			contactapp.WithSubscriberNotifier(contactautomation.NewSubscriberNotifier(automation, cfg.AutomationNewsletterWebhook)))
	}
	contactService := contactapp.NewService(contactRepo, contactOpts...)

	reconciler := buildReconciler(cfg, db, orderRepo, instruments, logger)

	handlers := storefrontserver.ApiHandleFunctions{
		OrdersAPI:   storefrontserver.NewOrdersAPI(orderService, promoService),
		PaymentsAPI: storefrontserver.NewPaymentsAPI(reconciler),
		AuthAPI:     storefrontserver.NewAuthAPI(userService),
		ContactAPI:  storefrontserver.NewContactAPI(contactService),
		AdminAPI:    storefrontserver.NewAdminAPI(orderService, promoService, contactService),
		Auth:        storefrontserver.NewAuthMiddleware(userService),
	}

	router := storefrontserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("storefront API listening", slog.String("addr", addr), slog.String("environment", cfg.Environment))
	if err := router.Run(addr); err != nil {
		logger.Error("storefront API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildOrderRepository(db *gorm.DB, policy ordersdomain.TransitionPolicy, logger *slog.Logger) ordersports.Repository {
	if db == nil {
		return ordersmemory.NewRepository(policy)
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db, policy)
}

func buildPromoRepository(db *gorm.DB, logger *slog.Logger) promosports.Repository {
	if db == nil {
		return promosmemory.NewSeededRepository()
	}
	logger.Info("promo repository configured with postgres")
	return promospostgres.NewRepository(db)
}

func buildUserStores(cfg Config, db *gorm.DB, logger *slog.Logger) (userports.Repository, userports.SessionStore) {
	if db == nil {
		return usermemory.NewRepository(seedAdmin(cfg, logger)...), usermemory.NewSessionStore()
	}
	logger.Info("user repository configured with postgres")
	repo := userpostgres.NewRepository(db)
	for _, admin := range seedAdmin(cfg, logger) {
		if _, err := repo.Save(context.Background(), admin); err != nil {
			logger.Warn("failed to seed admin account", slog.String("error", err.Error()))
		}
	}
	return repo, userpostgres.NewSessionStore(db)
}

func seedAdmin(cfg Config, logger *slog.Logger) []*userdomain.User {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	admin, err := userdomain.NewUser(cfg.AdminEmail, "Administrator", cfg.AdminPassword)
	if err != nil {
		logger.Warn("invalid admin seed credentials", slog.String("error", err.Error()))
		return nil
	}
	admin.IsAdmin = true
	return []*userdomain.User{admin}
}

func buildContactRepository(db *gorm.DB, logger *slog.Logger) contactports.Repository {
	if db == nil {
		return contactmemory.NewRepository()
	}
	logger.Info("contact repository configured with postgres")
	return contactpostgres.NewRepository(db)
}

func buildSubscriberRepository(db *gorm.DB, logger *slog.Logger) contactports.SubscriberRepository {
	if db == nil {
		return contactmemory.NewSubscriberStore()
	}
	logger.Info("newsletter subscriber repository configured with postgres")
	return contactpostgres.NewSubscriberRepository(db)
}

func buildReconciler(cfg Config, db *gorm.DB, orderRepo ordersports.Repository, instruments *platformobservability.Instruments, logger *slog.Logger) paymentsports.Reconciler {
	if cfg.StripeWebhookSecret == "" {
		if cfg.Production() {
			logger.Error("STRIPE_WEBHOOK_SECRET not set in production, webhook events will be rejected")
		} else {
			logger.Warn("STRIPE_WEBHOOK_SECRET not set, accepting unverified webhook events")
		}
	}
	verifier := paymentsstripe.NewVerifier(cfg.StripeWebhookSecret, !cfg.Production())

	var eventStore paymentsports.ProcessedEventStore
	switch {
	case cfg.RedisAddr != "":
		eventStore = paymentsredis.NewEventStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), 0)
		logger.Info("webhook event store configured with redis", slog.String("addr", cfg.RedisAddr))
	case db != nil:
		eventStore = paymentspostgres.NewEventStore(db)
		logger.Info("webhook event store configured with postgres")
	default:
		eventStore = paymentsmemory.NewEventStore()
	}

	core := paymentsapp.NewReconciler(verifier, eventStore, paymentsorders.NewApplier(orderRepo))
	return paymentsobs.New(
		core,
		paymentsobs.WithLogger(logger),
		paymentsobs.WithTracer(instruments.Tracer("internal.payments.application")),
		paymentsobs.WithMeter(instruments.Meter("internal.payments.application")),
	)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
