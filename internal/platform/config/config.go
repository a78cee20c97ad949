package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultConsentCacheTTL is the single authority on how long a cached consent
// record may be served before the durable store is consulted again. Call sites
// must not carry their own TTLs.
const DefaultConsentCacheTTL = 600 * time.Second

// Server captures HTTP server level configuration.
type Server struct {
	Addr     string
	LogLevel string
}

// Postgres captures connection settings for the durable consent store.
type Postgres struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	ConnLifetime time.Duration
}

// Redis captures connection settings for the consent cache.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Consent captures consent engine tunables.
type Consent struct {
	CacheTTL time.Duration
}

// Auth captures admin surface authentication settings.
type Auth struct {
	JWTSigningKey string
	AdminKeyHash  string
}

// Kafka captures the audit event stream settings. Empty brokers disable the
// Kafka publisher; the outbox still records events durably.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Config is the process-wide configuration assembled from the environment.
type Config struct {
	Server   Server
	Postgres Postgres
	Redis    Redis
	Consent  Consent
	Auth     Auth
	Kafka    Kafka
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:     envOr("CONSENTD_ADDR", ":8080"),
			LogLevel: envOr("CONSENTD_LOG_LEVEL", "info"),
		},
		Postgres: Postgres{
			DSN:          os.Getenv("CONSENTD_POSTGRES_DSN"),
			MaxOpenConns: envIntOr("CONSENTD_POSTGRES_MAX_OPEN", 25),
			MaxIdleConns: envIntOr("CONSENTD_POSTGRES_MAX_IDLE", 5),
			ConnLifetime: envDurationOr("CONSENTD_POSTGRES_CONN_LIFETIME", 30*time.Minute),
		},
		Redis: Redis{
			URL:          os.Getenv("CONSENTD_REDIS_URL"),
			PoolSize:     envIntOr("CONSENTD_REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("CONSENTD_REDIS_MIN_IDLE", 5),
			DialTimeout:  envDurationOr("CONSENTD_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("CONSENTD_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("CONSENTD_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Consent: Consent{
			CacheTTL: envDurationOr("CONSENTD_CONSENT_CACHE_TTL", DefaultConsentCacheTTL),
		},
		Auth: Auth{
			JWTSigningKey: envOr("CONSENTD_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			AdminKeyHash:  os.Getenv("CONSENTD_ADMIN_KEY_HASH"),
		},
		Kafka: Kafka{
			Brokers: splitNonEmpty(os.Getenv("CONSENTD_KAFKA_BROKERS")),
			Topic:   envOr("CONSENTD_KAFKA_AUDIT_TOPIC", "consent.audit"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
