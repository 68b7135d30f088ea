package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	HeartRefill      time.Duration
	DailyQuestCount  int
	EventWorkerCount int
	EventQueueSize   int
	LeagueTopSize    int
	RecentActivity   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:ozquiz.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		HeartRefill:      envDurationOr("HEART_REFILL_INTERVAL", 3*time.Hour),
		DailyQuestCount:  envIntOr("DAILY_QUEST_COUNT", 3),
		EventWorkerCount: envIntOr("EVENT_WORKER_COUNT", 2),
		EventQueueSize:   envIntOr("EVENT_QUEUE_SIZE", 64),
		LeagueTopSize:    envIntOr("LEAGUE_TOP_SIZE", 10),
		RecentActivity:   envIntOr("RECENT_ACTIVITY_LIMIT", 10),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
