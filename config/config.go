package config

import (
	"fmt"
	"os"
	"time"
)

// Config carries every setting the process needs. It is loaded once in main
// and handed to the components that need it; nothing reads the environment
// after startup.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret     string
	JWTExpiration time.Duration

	RedisAddr     string
	RedisPassword string

	ElasticAddr string

	NotifierURL  string
	MailerURL    string
	ServiceToken string
	VerifyURL    string

	OutboxInterval    time.Duration
	OutboxMaxAttempts int

	LogMode string
}

func Load() Config {
	return Config{
		Port: getenv("PORT", "8080"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "admin"),
		DBPassword: getenv("DB_PASSWORD", ""),
		DBName:     getenv("DB_NAME", "eduonepostgresdb"),

		JWTSecret:     getenv("JWT_SECRET", "change-this-in-production"),
		JWTExpiration: 24 * time.Hour,

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),

		ElasticAddr: getenv("ELASTIC_ADDR", "http://localhost:9200"),

		NotifierURL:  getenv("NOTIFIER_URL", "http://middleware-service:6000/middleware/send_notifications"),
		MailerURL:    getenv("MAILER_URL", "http://email-service:9001/email/send"),
		ServiceToken: getenv("SERVICE_TOKEN", ""),
		VerifyURL:    getenv("VERIFY_URL", "http://localhost:8080/api/v1/auth/verify"),

		OutboxInterval:    durenv("OUTBOX_INTERVAL", 5*time.Second),
		OutboxMaxAttempts: 5,

		LogMode: getenv("LOG_MODE", "dev"),
	}
}

func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durenv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
