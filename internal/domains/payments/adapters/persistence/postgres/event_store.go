package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/storefront-api/internal/domains/payments/ports"
)

var _ ports.ProcessedEventStore = (*EventStore)(nil)

// EventStore records processed webhook event ids in PostgreSQL. The primary
// key makes the reservation atomic across replicas.
type EventStore struct {
	db *gorm.DB
}

// NewEventStore wires a PostgreSQL-backed store.
func NewEventStore(db *gorm.DB) *EventStore {
	store := &EventStore{db: db}
	if db != nil {
		_ = db.AutoMigrate(&processedEventRecord{})
	}
	return store
}

type processedEventRecord struct {
	EventID     string    `gorm:"primaryKey;column:event_id;size:255"`
	ProcessedAt time.Time `gorm:"column:processed_at"`
}

func (processedEventRecord) TableName() string { return "processed_webhook_events" }

func (s *EventStore) Reserve(ctx context.Context, eventID string) (bool, error) {
	if s == nil || s.db == nil {
		return false, errors.New("postgres event store not configured")
	}
	record := processedEventRecord{EventID: eventID, ProcessedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Create(&record).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	return false, err
}

func (s *EventStore) Release(ctx context.Context, eventID string) error {
	if s == nil || s.db == nil {
		return errors.New("postgres event store not configured")
	}
	return s.db.WithContext(ctx).Delete(&processedEventRecord{}, "event_id = ?", eventID).Error
}
