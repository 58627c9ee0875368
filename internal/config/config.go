// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends selectable with CADDIE_STORE.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config contains application configuration.
type Config struct {
	Addr          string `mapstructure:"CADDIE_ADDR"`
	Store         string `mapstructure:"CADDIE_STORE"`
	DBPath        string `mapstructure:"CADDIE_DB_PATH"`
	RedisAddr     string `mapstructure:"CADDIE_REDIS_ADDR"`
	RedisPassword string `mapstructure:"CADDIE_REDIS_PASSWORD"`
	RedisPrefix   string `mapstructure:"CADDIE_REDIS_PREFIX"`
	MaxSessions   int    `mapstructure:"CADDIE_MAX_SESSIONS"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration from environment variables and .env.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("CADDIE_ADDR", ":8080")
	v.SetDefault("CADDIE_STORE", StoreSQLite)
	v.SetDefault("CADDIE_DB_PATH", "./data/caddie.db")
	v.SetDefault("CADDIE_REDIS_ADDR", "localhost:6379")
	v.SetDefault("CADDIE_REDIS_PASSWORD", "")
	v.SetDefault("CADDIE_REDIS_PREFIX", "caddie:")
	v.SetDefault("CADDIE_MAX_SESSIONS", 16)
	v.SetDefault("LOG_LEVEL", "info")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.Store {
	case StoreSQLite, StoreRedis:
	default:
		return Config{}, fmt.Errorf("unknown CADDIE_STORE %q (want %s or %s)", cfg.Store, StoreSQLite, StoreRedis)
	}

	return cfg, nil
}
