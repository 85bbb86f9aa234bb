package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Addr               string
	Environment        string
	FrontendDir        string
	DocstoreDriver     string
	DatabaseURL        string
	MongoURI           string
	MongoDatabase      string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	SessionTTL         time.Duration
	JWTSecret          string
	TokenTTL           time.Duration
	DataEncryptionKey  string
	EmailEnabled       bool
	EmailFrom          string
	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPassword       string
	SMTPUseTLS         bool
	AppBaseURL         string
	QRCodeBaseURL      string
	Timezone           string
	RunMigrations      bool
	RunSeed            bool
	SeedHREmail        string
	SeedHRPassword     string
	SeedHRName         string
	MaxBodyBytes       int64
	RateLimitPerMinute int
	JobQueueSize       int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	MetricsEnabled     bool
	LogLevel           string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		Environment:        getEnv("APP_ENV", "development"),
		FrontendDir:        getEnv("FRONTEND_DIR", "frontend/dist"),
		DocstoreDriver:     strings.ToLower(getEnv("DOCSTORE_DRIVER", DriverMemory)),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MongoURI:           getEnv("MONGO_URI", ""),
		MongoDatabase:      getEnv("MONGO_DATABASE", "staffsync"),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		SessionTTL:         getEnvDuration("SESSION_TTL", 12*time.Hour),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           getEnvDuration("TOKEN_TTL", 12*time.Hour),
		DataEncryptionKey:  getEnv("DATA_ENCRYPTION_KEY", ""),
		EmailEnabled:       getEnvBool("EMAIL_ENABLED", false),
		EmailFrom:          getEnv("EMAIL_FROM", "onboarding@resend.dev"),
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUser:           getEnv("SMTP_USER", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:         getEnvBool("SMTP_USE_TLS", true),
		AppBaseURL:         strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:8080"), "/"),
		QRCodeBaseURL:      getEnv("QR_CODE_BASE_URL", "https://api.qrserver.com/v1/create-qr-code/"),
		Timezone:           getEnv("APP_TIMEZONE", "UTC"),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:            getEnvBool("RUN_SEED", true),
		SeedHREmail:        getEnv("SEED_HR_EMAIL", ""),
		SeedHRPassword:     getEnv("SEED_HR_PASSWORD", ""),
		SeedHRName:         getEnv("SEED_HR_NAME", "HR Manager"),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		JobQueueSize:       getEnvInt("JOB_QUEUE_SIZE", 128),
		ReadTimeout:        getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:       getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

// Location resolves Timezone; Validate guarantees it loads.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	switch c.DocstoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	case DriverMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo driver")
		}
	default:
		return fmt.Errorf("DOCSTORE_DRIVER must be one of memory, postgres, mongo")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.DocstoreDriver == DriverMemory {
			return fmt.Errorf("DOCSTORE_DRIVER=memory is not allowed in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.JobQueueSize <= 0 {
		return fmt.Errorf("JOB_QUEUE_SIZE must be positive")
	}
	if c.TokenTTL <= 0 || c.SessionTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL and SESSION_TTL must be positive")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	return nil
}
