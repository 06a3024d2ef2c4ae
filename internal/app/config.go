package app

import (
	"time"

	"go-backoffice/internal/recruitment"
	"go-backoffice/internal/shared/env"
)

const connectRetries = 5

// Config gathers the settings of every binary. Values come from the
// environment after godotenv has loaded .env.
type Config struct {
	Port           string
	DB             env.DB
	RedisAddr      string
	KafkaBroker    string
	ListName       string
	CacheTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	OutboxPoll     time.Duration
}

func LoadConfig() Config {
	return Config{
		Port:           env.String("PORT", "3000"),
		DB:             env.LoadDB(),
		RedisAddr:      env.String("REDIS_ADDR", ""),
		KafkaBroker:    env.String("KAFKA_BROKER", ""),
		ListName:       env.String("LIST_NAME", recruitment.DefaultListName),
		CacheTTL:       env.Duration("POSTINGS_CACHE_TTL", 5*time.Minute),
		RateLimitRPS:   env.Float("RATE_LIMIT_RPS", 10),
		RateLimitBurst: env.Int("RATE_LIMIT_BURST", 20),
		OutboxPoll:     env.Duration("OUTBOX_POLL_INTERVAL", 3*time.Second),
	}
}
