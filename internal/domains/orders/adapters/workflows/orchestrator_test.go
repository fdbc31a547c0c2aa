package workflows

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	orderworkflows "github.com/Apurer/storefront-api/internal/durable/temporal/workflows/orders"
)

type fakeWorkflowClient struct {
	client.Client

	gotOptions  client.StartWorkflowOptions
	gotWorkflow interface{}
	startErr    error
	calls       int
}

func (f *fakeWorkflowClient) ExecuteWorkflow(_ context.Context, options client.StartWorkflowOptions, workflow interface{}, _ ...interface{}) (client.WorkflowRun, error) {
	f.calls++
	f.gotOptions = options
	f.gotWorkflow = workflow
	return nil, f.startErr
}

func testOrder(id string) *domain.Order {
	return &domain.Order{
		ID:       id,
		Customer: domain.Customer{Name: "Alice", Email: "alice@example.com"},
		Status:   domain.StatusProcessing,
	}
}

func newCapturedLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestTemporalDispatcher_StartsByRegisteredName(t *testing.T) {
	fake := &fakeWorkflowClient{}
	dispatcher := NewTemporalDispatcher(fake, slog.Default())

	dispatcher.DispatchOrderPlaced(context.Background(), testOrder("ORD-AAAA1111"))

	require.Equal(t, 1, fake.calls)
	assert.Equal(t, orderworkflows.OrderNotificationWorkflowName, fake.gotWorkflow)
	assert.Equal(t, "order-notification-ORD-AAAA1111", fake.gotOptions.ID)
	assert.Equal(t, orderworkflows.OrderNotificationTaskQueue, fake.gotOptions.TaskQueue)
}

func TestTemporalDispatcher_AlreadyStartedIsBenign(t *testing.T) {
	fake := &fakeWorkflowClient{
		startErr: serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "request-1", "run-1"),
	}
	var buf bytes.Buffer
	dispatcher := NewTemporalDispatcher(fake, newCapturedLogger(&buf))

	dispatcher.DispatchOrderPlaced(context.Background(), testOrder("ORD-BBBB2222"))

	assert.NotContains(t, buf.String(), "failed to start")
	assert.Contains(t, buf.String(), "already started")
	assert.Contains(t, buf.String(), "run-1")
}

func TestTemporalDispatcher_StartFailureLoggedAndSwallowed(t *testing.T) {
	fake := &fakeWorkflowClient{startErr: errors.New("cluster unavailable")}
	var buf bytes.Buffer
	dispatcher := NewTemporalDispatcher(fake, newCapturedLogger(&buf))

	dispatcher.DispatchOrderPlaced(context.Background(), testOrder("ORD-CCCC3333"))

	assert.Contains(t, buf.String(), "failed to start order notification workflow")
	assert.Contains(t, buf.String(), "cluster unavailable")
}
