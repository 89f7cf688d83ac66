package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Xero endpoint defaults. Overridable through env so tests can point the
// exchange at a local server.
const (
	defaultXeroAuthURL  = "https://login.xero.com/identity/connect/authorize"
	defaultXeroTokenURL = "https://identity.xero.com/connect/token"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	FrontendBaseURL string

	// Xero OAuth endpoints
	XeroAuthURL  string `mapstructure:"XERO_AUTH_URL"`
	XeroTokenURL string `mapstructure:"XERO_TOKEN_URL"`

	// Upload rate limit in ulule/limiter notation, e.g. "20-M".
	UploadRateLimit string `mapstructure:"UPLOAD_RATE_LIMIT"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("XERO_AUTH_URL", defaultXeroAuthURL)
	viper.SetDefault("XERO_TOKEN_URL", defaultXeroTokenURL)
	viper.SetDefault("UPLOAD_RATE_LIMIT", "20-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.XeroAuthURL = viper.GetString("XERO_AUTH_URL")
	cfg.XeroTokenURL = viper.GetString("XERO_TOKEN_URL")
	cfg.UploadRateLimit = viper.GetString("UPLOAD_RATE_LIMIT")

	return cfg, nil
}
