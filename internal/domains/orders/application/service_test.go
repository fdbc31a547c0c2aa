package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/storefront-api/internal/domains/orders/adapters/memory"
	"github.com/Apurer/storefront-api/internal/domains/orders/application/types"
	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/storefront-api/internal/domains/orders/ports"
)

type fakeQuoter struct {
	quote    *ports.PromoQuote
	quoteErr error
	recorded []string
}

func (f *fakeQuoter) Quote(_ context.Context, code string, subtotal float64) (*ports.PromoQuote, error) {
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	return f.quote, nil
}

func (f *fakeQuoter) RecordUse(_ context.Context, code string) error {
	f.recorded = append(f.recorded, code)
	return nil
}

type fakeGateway struct {
	gotAmount   float64
	gotCurrency string
	gotMetadata map[string]string
	result      *ports.PaymentIntentResult
	err         error
}

func (f *fakeGateway) CreateIntent(_ context.Context, amount float64, currency string, metadata map[string]string) (*ports.PaymentIntentResult, error) {
	f.gotAmount = amount
	f.gotCurrency = currency
	f.gotMetadata = metadata
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeDispatcher struct {
	dispatched []*domain.Order
}

func (f *fakeDispatcher) DispatchOrderPlaced(_ context.Context, order *domain.Order) {
	f.dispatched = append(f.dispatched, order)
}

func draftInput() types.CreateOrderInput {
	return types.CreateOrderInput{
		Customer: domain.Customer{Name: "Alice", Email: "Alice@Example.com"},
		Items:    []domain.LineItem{{ProductID: "p1", Name: "Mug", Price: 25, Quantity: 1}},
		Subtotal: 25,
		Shipping: 5,
		Total:    30,
	}
}

func TestCreateOrder_PersistsAndDispatches(t *testing.T) {
	repo := memory.NewRepository(domain.TransitionPolicy{})
	dispatcher := &fakeDispatcher{}
	svc := NewService(repo, WithNotificationDispatcher(dispatcher))

	order, err := svc.CreateOrder(context.Background(), draftInput())
	require.NoError(t, err)
	require.Regexp(t, `^ORD-[A-Z0-9]{8}$`, order.ID)
	require.Equal(t, domain.StatusProcessing, order.Status)
	require.Len(t, dispatcher.dispatched, 1)
	require.Equal(t, order.ID, dispatcher.dispatched[0].ID)
}

func TestCreateOrder_RejectsInvalidDraft(t *testing.T) {
	svc := NewService(memory.NewRepository(domain.TransitionPolicy{}))

	input := draftInput()
	input.Items = nil
	_, err := svc.CreateOrder(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNoItems)
}

func TestCreateOrder_AppliesPromoAndRecordsUse(t *testing.T) {
	repo := memory.NewRepository(domain.TransitionPolicy{})
	quoter := &fakeQuoter{quote: &ports.PromoQuote{Code: "SAVE10", Discount: 2.5, Type: "percentage", Value: 10}}
	svc := NewService(repo, WithPromoQuoter(quoter))

	input := draftInput()
	input.PromoCode = "save10"
	order, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, "SAVE10", order.PromoCode)
	require.Equal(t, 2.5, order.Discount)
	require.Equal(t, []string{"SAVE10"}, quoter.recorded)
}

func TestCreateOrder_PromoRejectionFailsCreation(t *testing.T) {
	repo := memory.NewRepository(domain.TransitionPolicy{})
	quoteErr := context.DeadlineExceeded
	quoter := &fakeQuoter{quoteErr: quoteErr}
	svc := NewService(repo, WithPromoQuoter(quoter))

	input := draftInput()
	input.PromoCode = "SAVE10"
	_, err := svc.CreateOrder(context.Background(), input)
	require.ErrorIs(t, err, quoteErr)
	require.Empty(t, quoter.recorded)

	orders, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestCreateOrder_DuplicateIntentRejected(t *testing.T) {
	repo := memory.NewRepository(domain.TransitionPolicy{})
	svc := NewService(repo)

	input := draftInput()
	input.PaymentIntentID = "pi_123"
	_, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.CreateOrder(context.Background(), input)
	require.ErrorIs(t, err, ports.ErrDuplicateIntent)
}

func TestGetOrder_OwnerOrAdmin(t *testing.T) {
	repo := memory.NewRepository(domain.TransitionPolicy{})
	svc := NewService(repo)
	order, err := svc.CreateOrder(context.Background(), draftInput())
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), order.ID, types.Identity{Email: "alice@example.com"})
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)

	_, err = svc.GetOrder(context.Background(), order.ID, types.Identity{Email: "mallory@example.com"})
	require.ErrorIs(t, err, ErrForbidden)

	got, err = svc.GetOrder(context.Background(), order.ID, types.Identity{Email: "admin@example.com", IsAdmin: true})
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)
}

func TestGetGuestOrder_CaseInsensitiveEmail(t *testing.T) {
	repo := memory.NewRepository(domain.TransitionPolicy{})
	svc := NewService(repo)
	order, err := svc.CreateOrder(context.Background(), draftInput())
	require.NoError(t, err)

	got, err := svc.GetGuestOrder(context.Background(), order.ID, "ALICE@example.COM")
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)

	_, err = svc.GetGuestOrder(context.Background(), order.ID, "other@example.com")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetGuestOrder(context.Background(), order.ID, "")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetGuestOrder(context.Background(), "ORD-MISSING1", "alice@example.com")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListOrders_MatchesEmailCaseInsensitively(t *testing.T) {
	repo := memory.NewRepository(domain.TransitionPolicy{})
	svc := NewService(repo)
	_, err := svc.CreateOrder(context.Background(), draftInput())
	require.NoError(t, err)

	other := draftInput()
	other.Customer.Email = "bob@example.com"
	_, err = svc.CreateOrder(context.Background(), other)
	require.NoError(t, err)

	list, err := svc.ListOrders(context.Background(), "ALICE@EXAMPLE.COM")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestUpdateStatus_MergesFulfillmentExtras(t *testing.T) {
	repo := memory.NewRepository(domain.TransitionPolicy{})
	svc := NewService(repo)
	order, err := svc.CreateOrder(context.Background(), draftInput())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), types.UpdateStatusInput{
		OrderID:        order.ID,
		Status:         domain.StatusShipped,
		TrackingNumber: "1Z999",
		Carrier:        "UPS",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipped, updated.Status)
	require.Equal(t, "1Z999", updated.TrackingNumber)

	_, err = svc.UpdateStatus(context.Background(), types.UpdateStatusInput{
		OrderID: order.ID,
		Status:  domain.StatusCancelled,
	})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTrackOrder_Timeline(t *testing.T) {
	repo := memory.NewRepository(domain.TransitionPolicy{})
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	repo.WithClock(func() time.Time { return now })
	svc := NewService(repo)
	order, err := svc.CreateOrder(context.Background(), draftInput())
	require.NoError(t, err)

	tracking, err := svc.TrackOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, tracking.Timeline, 4)
	require.True(t, tracking.Timeline[0].Completed)
	require.True(t, tracking.Timeline[1].Completed)
	require.False(t, tracking.Timeline[2].Completed)
	require.False(t, tracking.Timeline[3].Completed)
	require.Nil(t, tracking.Timeline[2].Date)

	_, err = svc.UpdateStatus(context.Background(), types.UpdateStatusInput{OrderID: order.ID, Status: domain.StatusShipped})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), types.UpdateStatusInput{OrderID: order.ID, Status: domain.StatusDelivered})
	require.NoError(t, err)

	tracking, err = svc.TrackOrder(context.Background(), order.ID)
	require.NoError(t, err)
	for _, stage := range tracking.Timeline {
		require.True(t, stage.Completed)
		require.NotNil(t, stage.Date)
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	gateway := &fakeGateway{result: &ports.PaymentIntentResult{IntentID: "pi_123", ClientSecret: "pi_123_secret"}}
	svc := NewService(memory.NewRepository(domain.TransitionPolicy{}), WithPaymentGateway(gateway))

	intent, err := svc.CreatePaymentIntent(context.Background(), types.CreateIntentInput{
		Amount:        30,
		CustomerEmail: "alice@example.com",
		Items:         []domain.LineItem{{ProductID: "p1", Name: "Mug", Price: 25, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, "pi_123", intent.IntentID)
	require.Equal(t, "pi_123_secret", intent.ClientSecret)
	require.Equal(t, "usd", gateway.gotCurrency)
	require.Equal(t, 30.0, gateway.gotAmount)
	require.Equal(t, "alice@example.com", gateway.gotMetadata["customer_email"])
	require.Contains(t, gateway.gotMetadata["order_items"], "Mug")
}

func TestCreatePaymentIntent_Validation(t *testing.T) {
	gateway := &fakeGateway{}
	svc := NewService(memory.NewRepository(domain.TransitionPolicy{}), WithPaymentGateway(gateway))

	_, err := svc.CreatePaymentIntent(context.Background(), types.CreateIntentInput{Amount: 0})
	require.ErrorIs(t, err, ErrInvalidInput)

	svc = NewService(memory.NewRepository(domain.TransitionPolicy{}))
	_, err = svc.CreatePaymentIntent(context.Background(), types.CreateIntentInput{Amount: 10})
	require.Error(t, err)
}
