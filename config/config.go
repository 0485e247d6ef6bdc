package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

/* Config é um pacote auxiliar. Poderia ser uma lib externa*/

type Config struct {
	Port          string `mapstructure:"PORT"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// RegistryBackend selects the registration store: "redis" or "postgres"
	RegistryBackend string `mapstructure:"REGISTRY_BACKEND"`
	PostgresDSN     string `mapstructure:"POSTGRES_DSN"`

	// SeedFile is an optional YAML file with registrations loaded at startup
	SeedFile string `mapstructure:"SEED_FILE"`

	WorkerCount           int `mapstructure:"WORKER_COUNT"`
	AttemptTimeoutSeconds int `mapstructure:"ATTEMPT_TIMEOUT_SECONDS"`
	MaxRetries            int `mapstructure:"MAX_RETRIES"`

	BackoffBaseMillis int     `mapstructure:"BACKOFF_BASE_MILLIS"`
	BackoffMaxSeconds int     `mapstructure:"BACKOFF_MAX_SECONDS"`
	BackoffJitter     float64 `mapstructure:"BACKOFF_JITTER"`

	RateLimitPerWindow       int  `mapstructure:"RATE_LIMIT_PER_WINDOW"`
	RateLimitWindowSeconds   int  `mapstructure:"RATE_LIMIT_WINDOW_SECONDS"`
	RateLimitConsumesAttempt bool `mapstructure:"RATE_LIMIT_CONSUMES_ATTEMPT"`

	// AllowedNetworks is a comma-separated list of CIDR blocks permitted as
	// delivery destinations. Empty means all destinations are allowed.
	AllowedNetworks string `mapstructure:"ALLOWED_NETWORKS"`
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	// A missing config file is fine: everything can come from the environment
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REGISTRY_BACKEND", "redis")
	viper.SetDefault("WORKER_COUNT", 4)
	viper.SetDefault("ATTEMPT_TIMEOUT_SECONDS", 10)
	viper.SetDefault("MAX_RETRIES", 5)
	viper.SetDefault("BACKOFF_BASE_MILLIS", 1000)
	viper.SetDefault("BACKOFF_MAX_SECONDS", 300)
	viper.SetDefault("BACKOFF_JITTER", 0.2)
	viper.SetDefault("RATE_LIMIT_PER_WINDOW", 0)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("RATE_LIMIT_CONSUMES_ATTEMPT", false)
	viper.SetDefault("ALLOWED_NETWORKS", "")
}

// AttemptTimeout returns the per-attempt HTTP timeout
func (c *Config) AttemptTimeout() time.Duration {
	return time.Duration(c.AttemptTimeoutSeconds) * time.Second
}

// BackoffBase returns the base delay for the first retry
func (c *Config) BackoffBase() time.Duration {
	return time.Duration(c.BackoffBaseMillis) * time.Millisecond
}

// BackoffMax returns the ceiling for retry delays
func (c *Config) BackoffMax() time.Duration {
	return time.Duration(c.BackoffMaxSeconds) * time.Second
}

// RateLimitWindow returns the rolling window used by the rate limiter
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}
