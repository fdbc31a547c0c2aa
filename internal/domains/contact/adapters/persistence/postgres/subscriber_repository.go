package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/storefront-api/internal/domains/contact/domain"
	"github.com/Apurer/storefront-api/internal/domains/contact/ports"
)

var _ ports.SubscriberRepository = (*SubscriberRepository)(nil)

// SubscriberRepository persists newsletter signups in PostgreSQL using GORM.
type SubscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository wires a PostgreSQL-backed newsletter list.
func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	repo := &SubscriberRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&subscriberRecord{})
	}
	return repo
}

type subscriberRecord struct {
	ID           string    `gorm:"primaryKey;column:id;size:36"`
	Email        string    `gorm:"column:email;uniqueIndex;size:255"`
	SubscribedAt time.Time `gorm:"column:subscribed_at"`
}

func (subscriberRecord) TableName() string { return "newsletter_subscribers" }

func (r *SubscriberRepository) Create(ctx context.Context, subscriber *domain.Subscriber) (*domain.Subscriber, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if subscriber == nil {
		return nil, errors.New("subscriber is nil")
	}
	record := subscriberRecord{
		ID:           subscriber.ID,
		Email:        subscriber.Email,
		SubscribedAt: subscriber.SubscribedAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateSubscriber
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *SubscriberRepository) List(ctx context.Context) ([]*domain.Subscriber, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []subscriberRecord
	if err := r.db.WithContext(ctx).Order("subscribed_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	subscribers := make([]*domain.Subscriber, 0, len(records))
	for i := range records {
		subscribers = append(subscribers, records[i].toDomain())
	}
	return subscribers, nil
}

func (r *SubscriberRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres subscriber repository not configured")
	}
	return nil
}

func (r subscriberRecord) toDomain() *domain.Subscriber {
	return &domain.Subscriber{
		ID:           r.ID,
		Email:        r.Email,
		SubscribedAt: r.SubscribedAt,
	}
}
