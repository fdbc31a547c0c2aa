package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/storefront-api/internal/domains/users/domain"
	userports "github.com/Apurer/storefront-api/internal/domains/users/ports"
)

// SessionStore persists sessions in PostgreSQL keyed by token.
type SessionStore struct {
	db *gorm.DB
}

// NewSessionStore wires a PostgreSQL-backed session store. Caller owns DB lifecycle.
func NewSessionStore(db *gorm.DB) *SessionStore {
	store := &SessionStore{db: db}
	if db != nil {
		_ = db.AutoMigrate(&sessionRecord{})
	}
	return store
}

type sessionRecord struct {
	Token     string    `gorm:"primaryKey;column:token;size:255"`
	Email     string    `gorm:"column:email;index"`
	IsAdmin   bool      `gorm:"column:is_admin"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Save upserts a session keyed by token.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if session == nil || strings.TrimSpace(session.Token) == "" {
		return errors.New("session token is required")
	}
	record := sessionRecord{
		Token:     session.Token,
		Email:     session.Email,
		IsAdmin:   session.IsAdmin,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "is_admin", "expires_at", "updated_at"}),
		}).
		Create(&record).Error
}

// Lookup resolves a token to its stored session.
func (s *SessionStore) Lookup(ctx context.Context, token string) (*domain.Session, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record sessionRecord
	if err := s.db.WithContext(ctx).First(&record, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userports.ErrSessionNotFound
		}
		return nil, err
	}
	return &domain.Session{
		Token:     record.Token,
		Email:     record.Email,
		IsAdmin:   record.IsAdmin,
		ExpiresAt: record.ExpiresAt,
		CreatedAt: record.CreatedAt,
	}, nil
}

// Delete removes a session by token.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "token = ?", token).Error
}

// PurgeExpired removes all expired sessions. Used by the housekeeping job.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now().UTC()).
		Delete(&sessionRecord{})
	return result.RowsAffected, result.Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}

var _ userports.SessionStore = (*SessionStore)(nil)
