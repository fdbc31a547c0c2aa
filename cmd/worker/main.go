package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	automationclient "github.com/Apurer/storefront-api/internal/clients/http/automation"
	ordersautomation "github.com/Apurer/storefront-api/internal/domains/orders/adapters/external/automation"
	orderworkflows "github.com/Apurer/storefront-api/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/Apurer/storefront-api/internal/platform/observability"
	orderactivities "github.com/Apurer/storefront-api/internal/platform/temporal/activities/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "storefront-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	webhookURL := strings.TrimSpace(os.Getenv("AUTOMATION_ORDER_WEBHOOK"))
	if webhookURL == "" {
		logger.Warn("AUTOMATION_ORDER_WEBHOOK not set, order notifications will be skipped")
	}
	notifier := ordersautomation.NewNotifier(automationclient.NewClient(nil), webhookURL)
	activities := orderactivities.NewActivities(notifier)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderNotificationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderNotificationWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderNotificationWorkflowName})
	w.RegisterActivityWithOptions(activities.NotifyOrderPlaced, activity.RegisterOptions{Name: orderactivities.NotifyOrderPlacedActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderNotificationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
