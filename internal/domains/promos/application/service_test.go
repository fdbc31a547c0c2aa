package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/storefront-api/internal/domains/promos/adapters/memory"
	"github.com/Apurer/storefront-api/internal/domains/promos/domain"
	"github.com/Apurer/storefront-api/internal/domains/promos/ports"
)

func TestQuote_SeededCodes(t *testing.T) {
	svc := NewService(memory.NewSeededRepository())

	quote, err := svc.Quote(context.Background(), "SAVE10", 100)
	require.NoError(t, err)
	require.Equal(t, 10.00, quote.Discount)
	require.Equal(t, domain.TypePercentage, quote.Type)

	quote, err = svc.Quote(context.Background(), "FLAT20", 150)
	require.NoError(t, err)
	require.Equal(t, 20.00, quote.Discount)

	quote, err = svc.Quote(context.Background(), "WELCOME15", 10)
	require.NoError(t, err)
	require.Equal(t, 1.50, quote.Discount)
}

func TestQuote_CanonicalizesCode(t *testing.T) {
	svc := NewService(memory.NewSeededRepository())

	quote, err := svc.Quote(context.Background(), "  save10 ", 100)
	require.NoError(t, err)
	require.Equal(t, "SAVE10", quote.Code)
}

func TestQuote_UnknownCode(t *testing.T) {
	svc := NewService(memory.NewSeededRepository())

	_, err := svc.Quote(context.Background(), "BOGUS", 100)
	require.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestQuote_BelowMinimumNamesThreshold(t *testing.T) {
	svc := NewService(memory.NewSeededRepository())

	_, err := svc.Quote(context.Background(), "SAVE10", 10)
	require.ErrorIs(t, err, domain.ErrBelowMinimum)
	require.Contains(t, err.Error(), "$50.00")
}

func TestQuote_DoesNotConsumeUses(t *testing.T) {
	repo := memory.NewSeededRepository()
	svc := NewService(repo)

	for i := 0; i < 3; i++ {
		_, err := svc.Quote(context.Background(), "SAVE10", 100)
		require.NoError(t, err)
	}

	promo, err := repo.GetByCode(context.Background(), "SAVE10")
	require.NoError(t, err)
	require.Equal(t, 45, promo.UsedCount)
}

func TestRecordUse_IncrementsCounter(t *testing.T) {
	repo := memory.NewSeededRepository()
	svc := NewService(repo)

	require.NoError(t, svc.RecordUse(context.Background(), "save10"))

	promo, err := repo.GetByCode(context.Background(), "SAVE10")
	require.NoError(t, err)
	require.Equal(t, 46, promo.UsedCount)
}

func TestCreateUpdateDelete(t *testing.T) {
	repo := memory.NewRepository()
	svc := NewService(repo)
	svc.WithClock(func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) })

	created, err := svc.Create(context.Background(), &domain.PromoCode{
		Code: "spring5", Type: domain.TypeFixed, Value: 5, IsActive: true,
	})
	require.NoError(t, err)
	require.Equal(t, "SPRING5", created.Code)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	created.Value = 7.5
	updated, err := svc.Update(context.Background(), created.ID, created)
	require.NoError(t, err)
	require.Equal(t, 7.5, updated.Value)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Quote(context.Background(), "SPRING5", 100)
	require.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestCreate_RejectsDuplicateCode(t *testing.T) {
	svc := NewService(memory.NewSeededRepository())

	_, err := svc.Create(context.Background(), &domain.PromoCode{
		Code: "SAVE10", Type: domain.TypeFixed, Value: 5, IsActive: true,
	})
	require.ErrorIs(t, err, ports.ErrDuplicateCode)
}

func TestCreate_RejectsInvalidDefinition(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.Create(context.Background(), &domain.PromoCode{
		Code: "X", Type: domain.TypePercentage, Value: 0, IsActive: true,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}
