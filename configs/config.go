package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Settings struct {
	Port        string
	Environment string

	DBDriver string
	MongoURI string
	DBName   string

	AccessTokenSecret string
	TokenTTL          time.Duration
	CORSOrigins       []string

	PaymentProvider    string
	PaymentCurrency    string
	StripeSecretKey    string
	StripeAPIBase      string
	PayPalAPIBase      string
	PayPalClientID     string
	PayPalClientSecret string

	CloudinaryURL    string
	CloudinaryFolder string

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string

	AdminEmail string
	AdminName  string

	ReminderSchedule string
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "8760h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}

	s := &Settings{
		Port:        getEnv("PORT", "8000"),
		Environment: getEnv("ENV", "development"),

		DBDriver: getEnv("DB_DRIVER", "mongo"),
		MongoURI: getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:   getEnv("DB_NAME", "ThinkSyncDB"),

		AccessTokenSecret: os.Getenv("ACCESS_TOKEN_SECRET"),
		TokenTTL:          ttl,
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:5174")),

		PaymentProvider:    getEnv("PAYMENT_PROVIDER", "stripe"),
		PaymentCurrency:    getEnv("PAYMENT_CURRENCY", "usd"),
		StripeSecretKey:    os.Getenv("STRIPE_SECRET_KEY"),
		StripeAPIBase:      getEnv("STRIPE_API_BASE", "https://api.stripe.com"),
		PayPalAPIBase:      getEnv("PAYPAL_API_BASE_URL", "https://api-m.sandbox.paypal.com"),
		PayPalClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),

		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder: getEnv("CLOUDINARY_FOLDER", "thinksync_materials"),

		BrevoAPIKey:     os.Getenv("BREVO_API_KEY"),
		EmailSender:     os.Getenv("EMAIL_SENDER"),
		EmailSenderName: getEnv("EMAIL_SENDER_NAME", "ThinkSync"),

		AdminEmail: os.Getenv("ADMIN_EMAIL"),
		AdminName:  getEnv("ADMIN_NAME", "Administrator"),

		ReminderSchedule: getEnv("REMINDER_SCHEDULE", "0 * * * *"),
	}

	if s.AccessTokenSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET is required but not set")
	}
	switch s.DBDriver {
	case "mongo", "memory":
	default:
		return nil, fmt.Errorf("DB_DRIVER must be mongo or memory, got %q", s.DBDriver)
	}
	switch s.PaymentProvider {
	case "stripe", "paypal":
	default:
		return nil, fmt.Errorf("PAYMENT_PROVIDER must be stripe or paypal, got %q", s.PaymentProvider)
	}

	if _, err := cron.ParseStandard(s.ReminderSchedule); err != nil {
		return nil, fmt.Errorf("REMINDER_SCHEDULE %q is not a valid cron expression: %w", s.ReminderSchedule, err)
	}

	return s, nil
}

// IsProduction switches cookies to Secure + SameSite=None for cross-site clients.
func (s *Settings) IsProduction() bool {
	return s.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
