package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/storefront-api/internal/domains/contact/domain"
	"github.com/Apurer/storefront-api/internal/domains/contact/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists contact submissions in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed contact repository.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&contactRecord{})
	}
	return repo
}

type contactRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:36"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email;index"`
	Subject   string    `gorm:"column:subject"`
	Message   string    `gorm:"column:message"`
	Status    string    `gorm:"column:status;type:varchar(16);index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (contactRecord) TableName() string { return "contact_submissions" }

func (r *Repository) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, errors.New("contact is nil")
	}
	record := toRecord(contact)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record contactRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, status domain.Status) ([]*domain.Contact, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	var records []contactRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	contacts := make([]*domain.Contact, 0, len(records))
	for i := range records {
		contacts = append(contacts, records[i].toDomain())
	}
	return contacts, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Contact, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&contactRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&contactRecord{}, "id = ?", id)
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
		return errors.New("postgres contact repository not configured")
	}
	return nil
}

func toRecord(contact *domain.Contact) contactRecord {
	return contactRecord{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Subject:   contact.Subject,
		Message:   contact.Message,
		Status:    string(contact.Status),
		CreatedAt: contact.CreatedAt,
	}
}

func (r contactRecord) toDomain() *domain.Contact {
	return &domain.Contact{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Subject:   r.Subject,
		Message:   r.Message,
		Status:    domain.Status(r.Status),
		CreatedAt: r.CreatedAt,
	}
}
