package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the process-wide configuration.
type Config struct {
	AppEnv     string
	AppPort    string
	LogLevel   string
	BcryptCost int

	Mongo     MongoConfig
	RabbitMQ  RabbitMQConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI                    string
	Database               string
	ServerSelectionTimeout time.Duration
	ConnectTimeout         time.Duration
	MaxPoolSize            uint64
	DNSServers             []string
}

// RabbitMQConfig is optional; an empty URL disables event publishing.
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// RedisConfig is optional; an empty Addr disables the read cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper builds a Config from v. DB_URI and DB are required and have no defaults.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("MONGO_SERVER_SELECTION_TIMEOUT", "30s")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	v.SetDefault("MONGO_MAX_POOL_SIZE", 5)
	v.SetDefault("RABBITMQ_EXCHANGE", "pds.events")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("RATE_LIMIT_MAX", 60)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.AutomaticEnv()

	for _, key := range []string{"DB_URI", "DB"} {
		if strings.TrimSpace(v.GetString(key)) == "" {
			return nil, fmt.Errorf("missing required configuration %s", key)
		}
	}

	port := v.GetString("APP_PORT")
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		port = ":" + port
	}

	cfg := &Config{
		AppEnv:     v.GetString("APP_ENV"),
		AppPort:    port,
		LogLevel:   v.GetString("LOG_LEVEL"),
		BcryptCost: v.GetInt("BCRYPT_COST"),
		Mongo: MongoConfig{
			URI:                    v.GetString("DB_URI"),
			Database:               v.GetString("DB"),
			ServerSelectionTimeout: v.GetDuration("MONGO_SERVER_SELECTION_TIMEOUT"),
			ConnectTimeout:         v.GetDuration("MONGO_CONNECT_TIMEOUT"),
			MaxPoolSize:            v.GetUint64("MONGO_MAX_POOL_SIZE"),
			DNSServers:             splitList(v.GetString("MONGO_DNS_SERVERS")),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("CACHE_TTL"),
		},
		RateLimit: RateLimitConfig{
			Max:    v.GetInt("RATE_LIMIT_MAX"),
			Window: v.GetDuration("RATE_LIMIT_WINDOW"),
		},
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
