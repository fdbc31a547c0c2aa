package postgres

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/storefront-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Repository persists orders in PostgreSQL using GORM. Status transitions
// run inside a transaction with a row lock so racing writers serialize.
type Repository struct {
	db     *gorm.DB
	policy domain.TransitionPolicy
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB, policy domain.TransitionPolicy) *Repository {
	repo := &Repository{db: db, policy: policy}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID                string            `gorm:"primaryKey;column:id;size:16"`
	CustomerName      string            `gorm:"column:customer_name"`
	CustomerEmail     string            `gorm:"column:customer_email;index"`
	CustomerPhone     string            `gorm:"column:customer_phone"`
	Items             []domain.LineItem `gorm:"column:items;serializer:json"`
	ProductIDs        pq.StringArray    `gorm:"column:product_ids;type:text[]"`
	ShippingAddress   []byte            `gorm:"column:shipping_address;type:jsonb"`
	BillingAddress    []byte            `gorm:"column:billing_address;type:jsonb"`
	Subtotal          float64           `gorm:"column:subtotal"`
	Shipping          float64           `gorm:"column:shipping"`
	Tax               float64           `gorm:"column:tax"`
	Total             float64           `gorm:"column:total"`
	PromoCode         string            `gorm:"column:promo_code"`
	Discount          float64           `gorm:"column:discount"`
	PaymentIntentID   *string           `gorm:"column:payment_intent_id;uniqueIndex"`
	PaymentMethod     string            `gorm:"column:payment_method"`
	Status            string            `gorm:"column:status;type:varchar(32);index"`
	IsDigital         bool              `gorm:"column:is_digital"`
	TrackingNumber    string            `gorm:"column:tracking_number"`
	Carrier           string            `gorm:"column:carrier"`
	EstimatedDelivery string            `gorm:"column:estimated_delivery"`
	PaidAt            *time.Time        `gorm:"column:paid_at"`
	ShippedAt         *time.Time        `gorm:"column:shipped_at"`
	DeliveredAt       *time.Time        `gorm:"column:delivered_at"`
	CancelledAt       *time.Time        `gorm:"column:cancelled_at"`
	Version           int64             `gorm:"column:version"`
	CreatedAt         time.Time         `gorm:"column:created_at;index"`
	UpdatedAt         time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Create assigns the identifier and persists the draft.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	clone.Status = domain.StatusProcessing
	clone.CreatedAt = time.Now().UTC()
	clone.Version = 1

	var lastErr error
	for attempt := 0; attempt < 10; attempt++ {
		id, err := newOrderID()
		if err != nil {
			return nil, err
		}
		clone.ID = id
		record := toRecord(&clone)
		err = r.db.WithContext(ctx).Create(&record).Error
		if err == nil {
			return r.GetByID(ctx, clone.ID)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if clone.PaymentIntentID != "" {
				if _, lookupErr := r.GetByPaymentIntentID(ctx, clone.PaymentIntentID); lookupErr == nil {
					return nil, ports.ErrDuplicateIntent
				}
			}
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("exhausted order id attempts: %w", lastErr)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByPaymentIntentID resolves the order bound to a processor intent.
func (r *Repository) GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "payment_intent_id = ?", intentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListByCustomerEmail matches the stored email case-insensitively.
func (r *Repository) ListByCustomerEmail(ctx context.Context, email string) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("LOWER(customer_email) = ?", strings.ToLower(email)).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// List returns all orders, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status domain.Status) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// UpdateStatus applies the transition under a row lock.
func (r *Repository) UpdateStatus(ctx context.Context, id string, next domain.Status, extra domain.StatusExtra) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var updated *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record orderRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		order := record.toDomain()
		if err := order.TransitionTo(next, extra, r.policy, time.Now().UTC()); err != nil {
			return err
		}
		fresh := toRecord(order)
		if err := tx.Model(&orderRecord{}).Where("id = ?", id).Updates(map[string]any{
			"status":             fresh.Status,
			"tracking_number":    fresh.TrackingNumber,
			"carrier":            fresh.Carrier,
			"estimated_delivery": fresh.EstimatedDelivery,
			"shipped_at":         fresh.ShippedAt,
			"delivered_at":       fresh.DeliveredAt,
			"cancelled_at":       fresh.CancelledAt,
			"version":            fresh.Version,
			"updated_at":         gorm.Expr("NOW()"),
		}).Error; err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ConfirmPayment stamps PaidAt exactly once.
func (r *Repository) ConfirmPayment(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var updated *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record orderRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		order := record.toDomain()
		order.ConfirmPayment(time.Now().UTC())
		if err := tx.Model(&orderRecord{}).Where("id = ?", id).Updates(map[string]any{
			"paid_at":    order.PaidAt,
			"version":    order.Version,
			"updated_at": gorm.Expr("NOW()"),
		}).Error; err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func newOrderID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate order id: %w", err)
	}
	suffix := make([]byte, 8)
	for i, b := range buf {
		suffix[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return "ORD-" + string(suffix), nil
}

func toRecord(order *domain.Order) orderRecord {
	rec := orderRecord{
		ID:                order.ID,
		CustomerName:      order.Customer.Name,
		CustomerEmail:     order.Customer.Email,
		CustomerPhone:     order.Customer.Phone,
		Items:             order.Items,
		ShippingAddress:   order.ShippingAddress,
		BillingAddress:    order.BillingAddress,
		Subtotal:          order.Subtotal,
		Shipping:          order.Shipping,
		Tax:               order.Tax,
		Total:             order.Total,
		PromoCode:         order.PromoCode,
		Discount:          order.Discount,
		PaymentMethod:     order.PaymentMethod,
		Status:            string(order.Status),
		IsDigital:         order.IsDigital,
		TrackingNumber:    order.TrackingNumber,
		Carrier:           order.Carrier,
		EstimatedDelivery: order.EstimatedDelivery,
		PaidAt:            order.PaidAt,
		ShippedAt:         order.ShippedAt,
		DeliveredAt:       order.DeliveredAt,
		CancelledAt:       order.CancelledAt,
		Version:           order.Version,
		CreatedAt:         order.CreatedAt,
	}
	if order.PaymentIntentID != "" {
		intentID := order.PaymentIntentID
		rec.PaymentIntentID = &intentID
	}
	for _, item := range order.Items {
		rec.ProductIDs = append(rec.ProductIDs, item.ProductID)
	}
	return rec
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID: r.ID,
		Customer: domain.Customer{
			Name:  r.CustomerName,
			Email: r.CustomerEmail,
			Phone: r.CustomerPhone,
		},
		Items:             r.Items,
		ShippingAddress:   r.ShippingAddress,
		BillingAddress:    r.BillingAddress,
		Subtotal:          r.Subtotal,
		Shipping:          r.Shipping,
		Tax:               r.Tax,
		Total:             r.Total,
		PromoCode:         r.PromoCode,
		Discount:          r.Discount,
		PaymentMethod:     r.PaymentMethod,
		Status:            domain.Status(r.Status),
		IsDigital:         r.IsDigital,
		TrackingNumber:    r.TrackingNumber,
		Carrier:           r.Carrier,
		EstimatedDelivery: r.EstimatedDelivery,
		PaidAt:            r.PaidAt,
		ShippedAt:         r.ShippedAt,
		DeliveredAt:       r.DeliveredAt,
		CancelledAt:       r.CancelledAt,
		Version:           r.Version,
		CreatedAt:         r.CreatedAt,
	}
	if r.PaymentIntentID != nil {
		order.PaymentIntentID = *r.PaymentIntentID
	}
	return order
}

func toDomainList(records []orderRecord) []*domain.Order {
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders
}
