package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Gateway   GatewayConfig
	Loyalty   LoyaltyConfig
	Push      PushConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// GatewayConfig configures the external payment gateway
type GatewayConfig struct {
	BaseURL    string
	SuccessURL string
	FailureURL string
	TimeoutSec int
}

// LoyaltyConfig tunes the points program
type LoyaltyConfig struct {
	CreditPerPoint int64
	Threshold      int64
	FirstOrderRate float64
	NormalRate     float64
}

// PushConfig configures the push-notification relay
type PushConfig struct {
	Endpoint      string
	DrainInterval time.Duration
	DrainBatch    int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "chopchap-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "chopchap")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Africa/Douala")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("GATEWAY_BASE_URL", "")
	viper.SetDefault("GATEWAY_SUCCESS_URL", "https://app.chopchap.cm/paiement/succes")
	viper.SetDefault("GATEWAY_FAILURE_URL", "https://app.chopchap.cm/paiement/echec")
	viper.SetDefault("GATEWAY_TIMEOUT_SEC", 30)
	viper.SetDefault("LOYALTY_CREDIT_PER_POINT", 100)
	viper.SetDefault("LOYALTY_THRESHOLD", 5000)
	viper.SetDefault("LOYALTY_FIRST_ORDER_RATE", 0.10)
	viper.SetDefault("LOYALTY_NORMAL_RATE", 0.05)
	viper.SetDefault("PUSH_ENDPOINT", "")
	viper.SetDefault("PUSH_DRAIN_INTERVAL_SEC", 30)
	viper.SetDefault("PUSH_DRAIN_BATCH", 50)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Gateway: GatewayConfig{
			BaseURL:    viper.GetString("GATEWAY_BASE_URL"),
			SuccessURL: viper.GetString("GATEWAY_SUCCESS_URL"),
			FailureURL: viper.GetString("GATEWAY_FAILURE_URL"),
			TimeoutSec: viper.GetInt("GATEWAY_TIMEOUT_SEC"),
		},
		Loyalty: LoyaltyConfig{
			CreditPerPoint: viper.GetInt64("LOYALTY_CREDIT_PER_POINT"),
			Threshold:      viper.GetInt64("LOYALTY_THRESHOLD"),
			FirstOrderRate: viper.GetFloat64("LOYALTY_FIRST_ORDER_RATE"),
			NormalRate:     viper.GetFloat64("LOYALTY_NORMAL_RATE"),
		},
		Push: PushConfig{
			Endpoint:      viper.GetString("PUSH_ENDPOINT"),
			DrainInterval: time.Duration(viper.GetInt("PUSH_DRAIN_INTERVAL_SEC")) * time.Second,
			DrainBatch:    viper.GetInt("PUSH_DRAIN_BATCH"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
