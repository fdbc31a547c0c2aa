package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&promoRecord{},
		&processedEventRecord{},
		&userRecord{},
		&sessionRecord{},
		&contactRecord{},
		&subscriberRecord{},
	)
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID                string         `gorm:"primaryKey;column:id;size:16"`
	CustomerName      string         `gorm:"column:customer_name"`
	CustomerEmail     string         `gorm:"column:customer_email;index"`
	CustomerPhone     string         `gorm:"column:customer_phone"`
	Items             []byte         `gorm:"column:items;type:jsonb"`
	ProductIDs        pq.StringArray `gorm:"column:product_ids;type:text[]"`
	ShippingAddress   []byte         `gorm:"column:shipping_address;type:jsonb"`
	BillingAddress    []byte         `gorm:"column:billing_address;type:jsonb"`
	Subtotal          float64        `gorm:"column:subtotal"`
	Shipping          float64        `gorm:"column:shipping"`
	Tax               float64        `gorm:"column:tax"`
	Total             float64        `gorm:"column:total"`
	PromoCode         string         `gorm:"column:promo_code"`
	Discount          float64        `gorm:"column:discount"`
	PaymentIntentID   *string        `gorm:"column:payment_intent_id;uniqueIndex"`
	PaymentMethod     string         `gorm:"column:payment_method"`
	Status            string         `gorm:"column:status;type:varchar(32);index"`
	IsDigital         bool           `gorm:"column:is_digital"`
	TrackingNumber    string         `gorm:"column:tracking_number"`
	Carrier           string         `gorm:"column:carrier"`
	EstimatedDelivery string         `gorm:"column:estimated_delivery"`
	PaidAt            *time.Time     `gorm:"column:paid_at"`
	ShippedAt         *time.Time     `gorm:"column:shipped_at"`
	DeliveredAt       *time.Time     `gorm:"column:delivered_at"`
	CancelledAt       *time.Time     `gorm:"column:cancelled_at"`
	Version           int64          `gorm:"column:version"`
	CreatedAt         time.Time      `gorm:"column:created_at;index"`
	UpdatedAt         time.Time      `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Promo schema mirrors the promos Postgres adapter.
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

// Processed event schema mirrors the payments Postgres event store.
type processedEventRecord struct {
	EventID     string    `gorm:"primaryKey;column:event_id;size:255"`
	ProcessedAt time.Time `gorm:"column:processed_at"`
}

func (processedEventRecord) TableName() string { return "processed_webhook_events" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	Email     string    `gorm:"primaryKey;column:email;size:255"`
	Name      string    `gorm:"column:name"`
	Password  string    `gorm:"column:password"`
	IsAdmin   bool      `gorm:"column:is_admin"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string    `gorm:"primaryKey;column:token;size:255"`
	Email     string    `gorm:"column:email;index"`
	IsAdmin   bool      `gorm:"column:is_admin"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Contact schema mirrors the contact Postgres adapter.
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

// Subscriber schema mirrors the newsletter Postgres adapter.
type subscriberRecord struct {
	ID           string    `gorm:"primaryKey;column:id;size:36"`
	Email        string    `gorm:"column:email;uniqueIndex;size:255"`
	SubscribedAt time.Time `gorm:"column:subscribed_at"`
}

func (subscriberRecord) TableName() string { return "newsletter_subscribers" }
