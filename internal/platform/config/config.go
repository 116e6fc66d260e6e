package config

import (
	"os"
	"strconv"
	"strings"
)

// Config captures everything the server needs from its environment. Postgres,
// Redis, and Kafka are optional: an empty DSN/URL/broker list leaves that
// backend disabled and the in-memory equivalents take over.
type Config struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	PostgresDSN   string
	RedisURL      string
	KafkaBrokers  []string
	KafkaTopic    string
	EventLogSize  int
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("LOSTFOUND_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("LOSTFOUND_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	issuer := os.Getenv("LOSTFOUND_JWT_ISSUER")
	if issuer == "" {
		issuer = "lostfound"
	}

	topic := os.Getenv("LOSTFOUND_KAFKA_TOPIC")
	if topic == "" {
		topic = "lostfound.events"
	}

	logSize := 0
	if v := os.Getenv("LOSTFOUND_EVENT_LOG_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			logSize = n
		}
	}

	var brokers []string
	if v := os.Getenv("LOSTFOUND_KAFKA_BROKERS"); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Config{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		JWTIssuer:     issuer,
		PostgresDSN:   os.Getenv("LOSTFOUND_POSTGRES_DSN"),
		RedisURL:      os.Getenv("LOSTFOUND_REDIS_URL"),
		KafkaBrokers:  brokers,
		KafkaTopic:    topic,
		EventLogSize:  logSize,
	}
}
