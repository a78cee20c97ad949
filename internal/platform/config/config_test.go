package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, DefaultConsentCacheTTL, cfg.Consent.CacheTTL)
	assert.Equal(t, "consent.audit", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("CONSENTD_ADDR", ":9090")
	t.Setenv("CONSENTD_CONSENT_CACHE_TTL", "5m")
	t.Setenv("CONSENTD_KAFKA_BROKERS", "broker-1:9092,broker-2:9092")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Consent.CacheTTL)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
}

func TestFromEnv_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("CONSENTD_CONSENT_CACHE_TTL", "not-a-duration")
	t.Setenv("CONSENTD_POSTGRES_MAX_OPEN", "many")

	cfg := FromEnv()

	assert.Equal(t, DefaultConsentCacheTTL, cfg.Consent.CacheTTL)
	assert.Equal(t, 25, cfg.Postgres.MaxOpenConns)
}

func TestFromEnv_BrokerListDropsEmptyEntries(t *testing.T) {
	t.Setenv("CONSENTD_KAFKA_BROKERS", " broker-1:9092, ,broker-2:9092,")

	cfg := FromEnv()

	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
}
