package api

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	Environment       string
	PostgresDSN       string
	RedisAddr         string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool

	StripeSecretKey     string
	StripeWebhookSecret string

	AutomationOrderWebhook      string
	AutomationContactWebhook    string
	AutomationNewsletterWebhook string

	PaymentRetryEnabled bool
	SessionTTL          time.Duration

	AdminEmail    string
	AdminPassword string
}

// LoadConfig reads environment variables and applies defaults.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		Environment:       envDefault("ENVIRONMENT", "local"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),

		StripeSecretKey:     strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		StripeWebhookSecret: strings.TrimSpace(os.Getenv("STRIPE_WEBHOOK_SECRET")),

		AutomationOrderWebhook:      strings.TrimSpace(os.Getenv("AUTOMATION_ORDER_WEBHOOK")),
		AutomationContactWebhook:    strings.TrimSpace(os.Getenv("AUTOMATION_CONTACT_WEBHOOK")),
		AutomationNewsletterWebhook: strings.TrimSpace(os.Getenv("AUTOMATION_NEWSLETTER_WEBHOOK")),

		PaymentRetryEnabled: isTruthy(os.Getenv("ORDERS_PAYMENT_RETRY_ENABLED")),
		SessionTTL:          sessionTTLFromEnv(),

		AdminEmail:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
	return cfg, nil
}

// Production reports whether the process runs with production hardening.
func (c Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}

func sessionTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS"))
	if raw == "" {
		return 0
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return 0
	}
	return time.Duration(hours) * time.Hour
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
