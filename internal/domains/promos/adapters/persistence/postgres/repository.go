package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/storefront-api/internal/domains/promos/domain"
	"github.com/Apurer/storefront-api/internal/domains/promos/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists promo codes in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed promo repository.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&promoRecord{})
	}
	return repo
}

type promoRecord struct {
	ID          uint       `gorm:"primaryKey;column:id"`
	Code        string     `gorm:"column:code;uniqueIndex;size:64"`
	Type        string     `gorm:"column:type;size:16"`
	Value       float64    `gorm:"column:value"`
	MinPurchase float64    `gorm:"column:min_purchase"`
	MaxUses     int        `gorm:"column:max_uses"`
	UsedCount   int        `gorm:"column:used_count"`
	ExpiresAt   *time.Time `gorm:"column:expires_at"`
	IsActive    bool       `gorm:"column:is_active"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (promoRecord) TableName() string { return "promo_codes" }

func (r *Repository) Save(ctx context.Context, promo *domain.PromoCode) (*domain.PromoCode, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, errors.New("promo is nil")
	}
	clone := *promo
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record, err := toRecord(&clone)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateCode
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.PromoCode, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	numeric, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, ports.ErrNotFound
	}
	var record promoRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", numeric).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record promoRecord
	if err := r.db.WithContext(ctx).First(&record, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.PromoCode, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []promoRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	promos := make([]*domain.PromoCode, 0, len(records))
	for i := range records {
		promos = append(promos, records[i].toDomain())
	}
	return promos, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	numeric, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return ports.ErrNotFound
	}
	result := r.db.WithContext(ctx).Delete(&promoRecord{}, "id = ?", numeric)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// IncrementUsage bumps the counter with a single UPDATE so concurrent order
// creations never lose increments.
func (r *Repository) IncrementUsage(ctx context.Context, code string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&promoRecord{}).
		Where("code = ?", code).
		Updates(map[string]any{
			"used_count": gorm.Expr("used_count + 1"),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres promo repository not configured")
	}
	return nil
}

func toRecord(promo *domain.PromoCode) (promoRecord, error) {
	record := promoRecord{
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
	if promo.ID != "" {
		numeric, err := strconv.ParseUint(promo.ID, 10, 64)
		if err != nil {
			return promoRecord{}, ports.ErrNotFound
		}
		record.ID = uint(numeric)
	}
	return record, nil
}

func (r promoRecord) toDomain() *domain.PromoCode {
	return &domain.PromoCode{
		ID:          strconv.FormatUint(uint64(r.ID), 10),
		Code:        r.Code,
		Type:        domain.Type(r.Type),
		Value:       r.Value,
		MinPurchase: r.MinPurchase,
		MaxUses:     r.MaxUses,
		UsedCount:   r.UsedCount,
		ExpiresAt:   r.ExpiresAt,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
	}
}
