package application

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/storefront-api/internal/domains/promos/domain"
	"github.com/Apurer/storefront-api/internal/domains/promos/ports"
)

// Service orchestrates the promo pricing and admin management use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

// NewService wires the promos service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Quote canonicalizes the code, looks it up, and prices the subtotal. An
// unknown code maps to domain.ErrInvalidCode regardless of why the lookup
// failed to find it.
func (s *Service) Quote(ctx context.Context, code string, subtotal float64) (*domain.Quote, error) {
	promo, err := s.repo.GetByCode(ctx, domain.Canonical(code))
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, domain.ErrInvalidCode
		}
		return nil, err
	}
	return promo.QuoteFor(subtotal, s.now())
}

// RecordUse consumes one use of the code.
func (s *Service) RecordUse(ctx context.Context, code string) error {
	return s.repo.IncrementUsage(ctx, domain.Canonical(code))
}

// Create persists a new admin-defined promo code.
func (s *Service) Create(ctx context.Context, promo *domain.PromoCode) (*domain.PromoCode, error) {
	if promo == nil {
		return nil, errors.New("promo is nil")
	}
	promo.Code = domain.Canonical(promo.Code)
	if err := promo.Validate(); err != nil {
		return nil, mapError(err)
	}
	if promo.CreatedAt.IsZero() {
		promo.CreatedAt = s.now().UTC()
	}
	saved, err := s.repo.Save(ctx, promo)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Update overrides an existing promo definition.
func (s *Service) Update(ctx context.Context, id string, promo *domain.PromoCode) (*domain.PromoCode, error) {
	if promo == nil {
		return nil, errors.New("promo is nil")
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	promo.ID = existing.ID
	promo.Code = domain.Canonical(promo.Code)
	promo.CreatedAt = existing.CreatedAt
	if err := promo.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, promo)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// List returns all promo definitions for admin views.
func (s *Service) List(ctx context.Context) ([]*domain.PromoCode, error) {
	return s.repo.List(ctx)
}

// Delete removes a promo definition.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
