package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Auth     AuthConfig
	Zarinpal ZarinpalConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	PlanCacheTTL       time.Duration
	VerifyLockTTL      time.Duration
	EventSinkTimeout   time.Duration
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AuthConfig struct {
	JWTSecret string
}

type ZarinpalConfig struct {
	MerchantID string
	Sandbox    bool
	// CallbackBaseURL is the public URL of the verify endpoint; the order id
	// is appended as a query parameter.
	CallbackBaseURL string
	Timeout         time.Duration
	// BaseURL overrides the gateway host (sandbox stubs, tests).
	BaseURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	baseURL := getEnv("APP_BASE_URL", "http://localhost:3000")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            baseURL,
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			PlanCacheTTL:       getEnvAsDuration("PLAN_CACHE_TTL", 5*time.Minute),
			VerifyLockTTL:      getEnvAsDuration("VERIFY_LOCK_TTL", 30*time.Second),
			EventSinkTimeout:   getEnvAsDuration("EVENT_SINK_TIMEOUT", 500*time.Millisecond),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "JobBoard"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Zarinpal: ZarinpalConfig{
			MerchantID:      getEnv("ZARINPAL_MERCHANT_ID", ""),
			Sandbox:         getEnvAsBool("ZARINPAL_SANDBOX", true),
			CallbackBaseURL: getEnv("ZARINPAL_CALLBACK_URL", baseURL+"/api/zarinpal-verify/"),
			Timeout:         getEnvAsDuration("ZARINPAL_TIMEOUT", 10*time.Second),
			BaseURL:         getEnv("ZARINPAL_BASE_URL", ""),
		},
	}
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// Validate reports settings the API cannot run without.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
