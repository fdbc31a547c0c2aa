//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/storefront-api/internal/domains/orders/ports"
	"github.com/Apurer/storefront-api/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func draftOrder(email, intentID string) *domain.Order {
	return &domain.Order{
		Customer: domain.Customer{Name: "Alice", Email: email},
		Items:    []domain.LineItem{{ProductID: "p1", Name: "Mug", Price: 25, Quantity: 1}},
		Subtotal: 25, Shipping: 5, Total: 30,
		PaymentIntentID: intentID,
		Status:          domain.StatusProcessing,
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db, domain.TransitionPolicy{})
	ctx := context.Background()

	stored, err := repo.Create(ctx, draftOrder("alice@example.com", "pi_123"))
	require.NoError(t, err)
	assert.Regexp(t, `^ORD-[A-Z0-9]{8}$`, stored.ID)
	assert.Equal(t, domain.StatusProcessing, stored.Status)

	fetched, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, fetched.ID)
	assert.Equal(t, "pi_123", fetched.PaymentIntentID)
	assert.Len(t, fetched.Items, 1)

	byIntent, err := repo.GetByPaymentIntentID(ctx, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, byIntent.ID)
}

func TestRepository_DuplicateIntentRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db, domain.TransitionPolicy{})
	ctx := context.Background()

	_, err := repo.Create(ctx, draftOrder("alice@example.com", "pi_123"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, draftOrder("bob@example.com", "pi_123"))
	assert.ErrorIs(t, err, ports.ErrDuplicateIntent)
}

func TestRepository_ListByCustomerEmailIgnoresCase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db, domain.TransitionPolicy{})
	ctx := context.Background()

	_, err := repo.Create(ctx, draftOrder("Alice@Example.com", ""))
	require.NoError(t, err)
	_, err = repo.Create(ctx, draftOrder("bob@example.com", ""))
	require.NoError(t, err)

	list, err := repo.ListByCustomerEmail(ctx, "ALICE@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRepository_UpdateStatusStateMachine(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db, domain.TransitionPolicy{})
	ctx := context.Background()

	stored, err := repo.Create(ctx, draftOrder("alice@example.com", ""))
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, stored.ID, domain.StatusDelivered, domain.StatusExtra{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	shipped, err := repo.UpdateStatus(ctx, stored.ID, domain.StatusShipped, domain.StatusExtra{TrackingNumber: "1Z999", Carrier: "UPS"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, shipped.Status)
	assert.NotNil(t, shipped.ShippedAt)

	fetched, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "1Z999", fetched.TrackingNumber)
	assert.Equal(t, int64(2), fetched.Version)
}

func TestRepository_ConfirmPaymentOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db, domain.TransitionPolicy{})
	ctx := context.Background()

	stored, err := repo.Create(ctx, draftOrder("alice@example.com", "pi_123"))
	require.NoError(t, err)

	first, err := repo.ConfirmPayment(ctx, stored.ID)
	require.NoError(t, err)
	require.NotNil(t, first.PaidAt)

	second, err := repo.ConfirmPayment(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, first.PaidAt.Unix(), second.PaidAt.Unix())
	assert.Equal(t, first.Version, second.Version)
}
