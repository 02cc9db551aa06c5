package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all process-wide settings. It is loaded once at startup
// and treated as read-only afterwards.
type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	APIVersion      string
	RabbitMQURL     string
	RateLimitMax    int
	RateLimitWindow time.Duration
	LogDevelopment  bool
}

// Load reads configuration from environment variables, falling back to
// sensible defaults. An empty MONGODB_URI selects the in-memory store.
func Load() Config {
	v := viper.New()
	v.SetDefault("APP_PORT", ":3000")
	v.SetDefault("MONGODB_URI", "")
	v.SetDefault("MONGODB_DATABASE", "katalog")
	v.SetDefault("API_VERSION", "v1")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("LOG_DEVELOPMENT", false)
	v.AutomaticEnv()

	return Config{
		Port:            v.GetString("APP_PORT"),
		MongoURI:        v.GetString("MONGODB_URI"),
		MongoDB:         v.GetString("MONGODB_DATABASE"),
		APIVersion:      v.GetString("API_VERSION"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		RateLimitMax:    v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow: v.GetDuration("RATE_LIMIT_WINDOW"),
		LogDevelopment:  v.GetBool("LOG_DEVELOPMENT"),
	}
}
