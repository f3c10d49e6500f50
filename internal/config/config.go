package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the bot server
type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	BotName        string `env:"BOT_NAME" envDefault:"Amrut-Dhara Water Solutions"`
	SupportContact string `env:"SUPPORT_CONTACT" envDefault:"+91-XXXXXXXXXX"`
	SupportEmail   string `env:"SUPPORT_EMAIL" envDefault:"support@amrutdhara.com"`

	SessionTimeoutMinutes  int           `env:"SESSION_TIMEOUT_MINUTES" envDefault:"30"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
	NotificationTimeout    time.Duration `env:"NOTIFICATION_TIMEOUT" envDefault:"30s"`

	UseMemoryStore           bool   `env:"USE_MEMORY_STORE"`
	DisableWebhookValidation bool   `env:"DISABLE_WEBHOOK_VALIDATION"`
	WhatsAppVerifyToken      string `env:"WHATSAPP_VERIFY_TOKEN" envDefault:"amrut_dhara_verify_token"`
	PublicURL                string `env:"PUBLIC_URL"` // used to rebuild the signed Twilio webhook URL
	PublicDir                string `env:"PUBLIC_DIR" envDefault:"./public"`

	Database Database
	Twilio   Twilio
	Postmark Postmark
}

// Database holds PostgreSQL connection settings
type Database struct {
	Host                   string `env:"DB_HOST" envDefault:"localhost"`
	Port                   int    `env:"DB_PORT" envDefault:"5432"`
	User                   string `env:"DB_USER" envDefault:"postgres"`
	Password               string `env:"DB_PASS"`
	Name                   string `env:"DB_NAME" envDefault:"amrutdhara"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"` // Cloud SQL socket
}

// Twilio holds credentials for SMS and WhatsApp delivery
type Twilio struct {
	AccountSID   string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken    string `env:"TWILIO_AUTH_TOKEN"`
	PhoneNumber  string `env:"TWILIO_PHONE_NUMBER"`
	WhatsAppFrom string `env:"TWILIO_WHATSAPP_FROM"` // Format: "whatsapp:+14155238886"
	AdminPhone   string `env:"ADMIN_PHONE_NUMBER"`
}

// Configured reports whether the REST credentials are present
func (t Twilio) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != ""
}

// Postmark holds credentials for transactional email
type Postmark struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail  string `env:"SENDER_EMAIL"`
}

// Configured reports whether email delivery can be enabled
func (p Postmark) Configured() bool {
	return p.ServerToken != "" && p.SenderEmail != ""
}

// SessionTimeout returns the inactivity timeout as a duration
func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.SessionTimeoutMinutes) * time.Minute
}

// IsDevelopment reports whether the server runs locally
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadDotEnv loads .env files for local development. Missing files are not an error.
func LoadDotEnv() {
	if err := godotenv.Load(".env"); err != nil {
		if err := godotenv.Load("environments/.env.development"); err != nil {
			log.Println("⚠️  No .env file found - checking environment variables")
		}
	}
}

// Load parses the environment into a Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.SessionTimeoutMinutes <= 0 {
		return nil, fmt.Errorf("SESSION_TIMEOUT_MINUTES must be positive, got %d", cfg.SessionTimeoutMinutes)
	}
	if cfg.SessionCleanupInterval <= 0 {
		return nil, fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive, got %s", cfg.SessionCleanupInterval)
	}
	return cfg, nil
}
