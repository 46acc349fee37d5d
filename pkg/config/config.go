package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	RateLimit    string

	// Mail dispatch for audit reports
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailSender   string

	// Audit thresholds and sweep behaviour
	AuditSingleTxnLimit decimal.Decimal
	AuditRecentSumLimit decimal.Decimal
	AuditRecentWindow   time.Duration
	AuditNotifyOnEmpty  bool
	AuditStorageTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("MAIL_SENDER", "bank@bank.com")
	viper.SetDefault("AUDIT_SINGLE_TXN_LIMIT", "15000")
	viper.SetDefault("AUDIT_RECENT_SUM_LIMIT", "23000")
	viper.SetDefault("AUDIT_RECENT_WINDOW", "72h")
	viper.SetDefault("AUDIT_NOTIFY_ON_EMPTY", false)
	viper.SetDefault("AUDIT_STORAGE_TIMEOUT", "30s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetInt("SMTP_PORT")
	cfg.SMTPUsername = viper.GetString("SMTP_USERNAME")
	cfg.SMTPPassword = viper.GetString("SMTP_PASSWORD")
	cfg.MailSender = viper.GetString("MAIL_SENDER")

	singleLimit, err := decimal.NewFromString(viper.GetString("AUDIT_SINGLE_TXN_LIMIT"))
	if err != nil {
		log.Printf("Warning: Invalid value for AUDIT_SINGLE_TXN_LIMIT ('%s'). Defaulting to 15000.\n", viper.GetString("AUDIT_SINGLE_TXN_LIMIT"))
		singleLimit = decimal.NewFromInt(15000)
	}
	cfg.AuditSingleTxnLimit = singleLimit

	recentLimit, err := decimal.NewFromString(viper.GetString("AUDIT_RECENT_SUM_LIMIT"))
	if err != nil {
		log.Printf("Warning: Invalid value for AUDIT_RECENT_SUM_LIMIT ('%s'). Defaulting to 23000.\n", viper.GetString("AUDIT_RECENT_SUM_LIMIT"))
		recentLimit = decimal.NewFromInt(23000)
	}
	cfg.AuditRecentSumLimit = recentLimit

	cfg.AuditRecentWindow = viper.GetDuration("AUDIT_RECENT_WINDOW")
	if cfg.AuditRecentWindow <= 0 {
		cfg.AuditRecentWindow = 72 * time.Hour
	}

	cfg.AuditNotifyOnEmpty = viper.GetBool("AUDIT_NOTIFY_ON_EMPTY")

	cfg.AuditStorageTimeout = viper.GetDuration("AUDIT_STORAGE_TIMEOUT")
	if cfg.AuditStorageTimeout <= 0 {
		cfg.AuditStorageTimeout = 30 * time.Second
	}

	return cfg, nil
}
