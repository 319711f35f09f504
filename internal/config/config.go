package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings, loaded from environment variables
// with an optional .env file for local development.
type Config struct {
	Port            string
	AppEnv          string
	DatabaseURL     string
	RedisURL        string
	GrupoEstudiante string
	CacheTTL        time.Duration
	RateLimitPerMin int
}

// Load reads configuration from the environment. DATABASE_URL is the only
// required setting.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("GRUPO_ESTUDIANTES", "GRUPO_1")
	v.SetDefault("PRODUCTO_CACHE_TTL_MIN", 5)
	v.SetDefault("RATE_LIMIT_PER_MIN", 120)

	// .env is optional; real deployments configure via environment.
	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("leyendo .env: %w", err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		Port:            v.GetString("PORT"),
		AppEnv:          v.GetString("APP_ENV"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		RedisURL:        v.GetString("REDIS_URL"),
		GrupoEstudiante: v.GetString("GRUPO_ESTUDIANTES"),
		CacheTTL:        time.Duration(v.GetInt("PRODUCTO_CACHE_TTL_MIN")) * time.Minute,
		RateLimitPerMin: v.GetInt("RATE_LIMIT_PER_MIN"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL es requerida")
	}
	if cfg.RateLimitPerMin <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MIN debe ser positivo")
	}
	return cfg, nil
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
