package config

import (
	"github.com/prajwalbharadwajbm/influencerconnect/internal/events"
)

// GetEventsConfig creates the change-notification configuration from environment variables
func GetEventsConfig() events.RedisConfig {
	return events.RedisConfig{
		Enabled:  getEnvBool("EVENTS_ENABLED", false),
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
		Channel:  getEnv("EVENTS_CHANNEL", "influencerconnect:events"),
	}
}
