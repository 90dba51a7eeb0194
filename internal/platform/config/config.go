package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything main needs to wire the intake service.
type Config struct {
	Addr     string
	LogLevel string

	// Allowlist holds the user IDs permitted to start an intake
	// conversation. Reviewers receive the finished dossier.
	Allowlist []string
	Reviewers []string

	// SendURL is the messaging platform endpoint replies are posted to.
	// When empty, outbound messages are logged instead.
	SendURL string

	RedisURL    string
	PostgresDSN string

	KafkaBrokers []string
	KafkaTopic   string

	// Per-source lookup endpoints. A source with an empty URL degrades to
	// its unavailable line.
	NomerogramURL string
	OlxURL        string
	GetcontactURL string
	SourceTimeout time.Duration

	SessionTTL time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Addr:          envOr("INTAKE_ADDR", ":8080"),
		LogLevel:      envOr("INTAKE_LOG_LEVEL", "info"),
		Allowlist:     splitList(os.Getenv("INTAKE_ALLOWLIST")),
		Reviewers:     splitList(os.Getenv("INTAKE_REVIEWERS")),
		SendURL:       os.Getenv("INTAKE_SEND_URL"),
		RedisURL:      os.Getenv("INTAKE_REDIS_URL"),
		PostgresDSN:   os.Getenv("INTAKE_POSTGRES_DSN"),
		KafkaBrokers:  splitList(os.Getenv("INTAKE_KAFKA_BROKERS")),
		KafkaTopic:    envOr("INTAKE_KAFKA_TOPIC", "intake.reviews"),
		NomerogramURL: os.Getenv("INTAKE_NOMEROGRAM_URL"),
		OlxURL:        os.Getenv("INTAKE_OLX_URL"),
		GetcontactURL: os.Getenv("INTAKE_GETCONTACT_URL"),
		SourceTimeout: envDuration("INTAKE_SOURCE_TIMEOUT", 5*time.Second),
		SessionTTL:    envDuration("INTAKE_SESSION_TTL", 24*time.Hour),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
