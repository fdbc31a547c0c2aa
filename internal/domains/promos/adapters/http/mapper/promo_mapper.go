package mapper

import (
	"time"

	promosdomain "github.com/Apurer/storefront-api/internal/domains/promos/domain"
)

// PromoRequest is the admin-facing promo definition payload.
type PromoRequest struct {
	Code        string     `json:"code" binding:"required"`
	Type        string     `json:"type" binding:"required"`
	Value       float64    `json:"value" binding:"required"`
	MinPurchase float64    `json:"minPurchase"`
	MaxUses     int        `json:"maxUses"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	IsActive    *bool      `json:"isActive"`
}

// Promo is the transport representation of a promo definition.
type Promo struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Type        string     `json:"type"`
	Value       float64    `json:"value"`
	MinPurchase float64    `json:"minPurchase"`
	MaxUses     int        `json:"maxUses"`
	UsedCount   int        `json:"usedCount"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ToDomainPromo converts an admin payload to the domain definition. A missing
// isActive defaults to enabled.
func ToDomainPromo(req PromoRequest) *promosdomain.PromoCode {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &promosdomain.PromoCode{
		Code:        req.Code,
		Type:        promosdomain.Type(req.Type),
		Value:       req.Value,
		MinPurchase: req.MinPurchase,
		MaxUses:     req.MaxUses,
		ExpiresAt:   req.ExpiresAt,
		IsActive:    active,
	}
}

// FromDomainPromo converts a domain promo to the transport representation.
func FromDomainPromo(promo *promosdomain.PromoCode) Promo {
	if promo == nil {
		return Promo{}
	}
	return Promo{
		ID:          promo.ID,
		Code:        promo.Code,
		Type:        string(promo.Type),
		Value:       promo.Value,
		MinPurchase: promo.MinPurchase,
		MaxUses:     promo.MaxUses,
		UsedCount:   promo.UsedCount,
		ExpiresAt:   promo.ExpiresAt,
		IsActive:    promo.IsActive,
		CreatedAt:   promo.CreatedAt,
	}
}

// FromDomainPromoList converts a slice of domain promos.
func FromDomainPromoList(promos []*promosdomain.PromoCode) []Promo {
	result := make([]Promo, 0, len(promos))
	for _, promo := range promos {
		result = append(result, FromDomainPromo(promo))
	}
	return result
}
