package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the kernel service.
type Config struct {
	Server ServerConfig
	Engine EngineConfig
	Redis  RedisConfig
	Queue  QueueConfig
}

// ServerConfig holds process-level configuration.
type ServerConfig struct {
	Environment string
}

// EngineConfig configures the kernel.Engine built at startup.
type EngineConfig struct {
	// Seed drives the engine's RNG. Zero means derive one from host time.
	Seed int64
	// KeepTemporary disables the scratchpad clears the engine performs by
	// default at the start and at the end of every command.
	KeepTemporary bool
}

// RedisConfig holds Redis connection settings for the event-log mirror
// sink and the asynq-backed command queue.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the host:port pair asynq and go-redis both expect.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// QueueConfig configures the asynq command queue.
type QueueConfig struct {
	Concurrency  int
	QueueName    string
	ShutdownWait time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Server.Environment = getEnv("ENV", "development")

	cfg.Engine.Seed = getEnvAsInt64("ENGINE_SEED", 0)
	cfg.Engine.KeepTemporary = getEnvAsBool("ENGINE_KEEP_TEMPORARY", false)

	cfg.Redis.Host = getEnv("REDIS_HOST", "localhost")
	cfg.Redis.Port = getEnvAsInt("REDIS_PORT", 6379)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)

	cfg.Queue.Concurrency = getEnvAsInt("QUEUE_CONCURRENCY", 1)
	cfg.Queue.QueueName = getEnv("QUEUE_NAME", "commands")
	cfg.Queue.ShutdownWait = getEnvAsDuration("QUEUE_SHUTDOWN_WAIT", 10*time.Second)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.ParseInt(strValue, 10, 64)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(strValue)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(strValue)
	if err != nil {
		return defaultValue
	}
	return duration
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Queue.Concurrency < 1 {
		return fmt.Errorf("queue concurrency must be at least 1")
	}
	if c.Queue.QueueName == "" {
		return fmt.Errorf("queue name is required")
	}
	if c.Redis.Host == "" {
		return fmt.Errorf("redis host is required")
	}
	return nil
}
