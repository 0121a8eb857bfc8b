package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Email  EmailConfig
	SMS    SMSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// StoreConfig holds spin record persistence settings.
type StoreConfig struct {
	FilePath string // flat JSON file holding all spin records
}

// EmailConfig holds Resend transactional email settings.
// Email is skipped entirely when APIKey or FromAddress is empty.
type EmailConfig struct {
	APIKey      string
	FromAddress string
	SiteURL     string // base URL for asset links in the email body
}

// SMSConfig holds credentials for the SMS provider cascade.
// Each provider is independently optional; an unconfigured provider is skipped.
type SMSConfig struct {
	Fast2SMSAPIKey   string
	MSG91AuthKey     string
	MSG91SenderID    string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioPhone      string
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env

	readTimeout, _ := strconv.Atoi(getEnv("READ_TIMEOUT_SEC", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("WRITE_TIMEOUT_SEC", "60"))

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "3000"),
			ReadTimeout:        readTimeout,
			WriteTimeout:       writeTimeout,
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Store: StoreConfig{
			FilePath: getEnv("SPIN_STORE_FILE", "spins.json"),
		},
		Email: EmailConfig{
			APIKey:      getEnv("RESEND_API_KEY", ""),
			FromAddress: getEnv("FROM_EMAIL", ""),
			SiteURL:     getEnv("SITE_URL", ""),
		},
		SMS: SMSConfig{
			Fast2SMSAPIKey:   getEnv("FAST2SMS_API_KEY", ""),
			MSG91AuthKey:     getEnv("MSG91_AUTH_KEY", ""),
			MSG91SenderID:    getEnv("MSG91_SENDER_ID", "ZTECHX"),
			TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			TwilioPhone:      getEnv("TWILIO_PHONE", ""),
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
