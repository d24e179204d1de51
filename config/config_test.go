package config

import "testing"

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()

	if cfg.Server.HTTPPort != ":8080" {
		t.Errorf("http port = %q, want :8080", cfg.Server.HTTPPort)
	}
	if cfg.Postgres.DBName != "sales_backoffice" {
		t.Errorf("db name = %q, want sales_backoffice", cfg.Postgres.DBName)
	}
	if cfg.JWT.TokenTTLHours != 24 {
		t.Errorf("token ttl = %d, want 24", cfg.JWT.TokenTTLHours)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "localhost:9092" {
		t.Errorf("brokers = %v, want [localhost:9092]", cfg.Kafka.Brokers)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", ":9999")
	t.Setenv("JWT_TOKEN_TTL_HOURS", "2")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("ELASTICSEARCH_ENABLED", "false")

	cfg := LoadEnv()

	if cfg.Server.HTTPPort != ":9999" {
		t.Errorf("http port = %q, want :9999", cfg.Server.HTTPPort)
	}
	if cfg.JWT.TokenTTLHours != 2 {
		t.Errorf("token ttl = %d, want 2", cfg.JWT.TokenTTLHours)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("brokers = %v, want both entries", cfg.Kafka.Brokers)
	}
	if cfg.Elastic.Enabled {
		t.Error("elasticsearch must be disabled by env override")
	}
}

func TestLoadEnvMalformedInt(t *testing.T) {
	t.Setenv("JWT_TOKEN_TTL_HOURS", "not-a-number")

	cfg := LoadEnv()
	if cfg.JWT.TokenTTLHours != 24 {
		t.Errorf("token ttl = %d, want fallback 24 on malformed value", cfg.JWT.TokenTTLHours)
	}
}
