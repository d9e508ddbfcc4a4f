// Package config loads process configuration once at startup. The
// resulting Config is passed into constructors explicitly; nothing in
// the service reads viper after Load returns.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds every process-level setting.
type Config struct {
	AppPort     string
	DatabaseDSN string
	JWTSecret   string
}

// Load reads configuration from the environment with defaults. The JWT
// signing secret has no safe default: Load fails when it is absent so
// the process dies at startup instead of issuing unverifiable tokens.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=catalogue port=5432 sslmode=disable")
	v.AutomaticEnv()

	cfg := Config{
		AppPort:     v.GetString("APP_PORT"),
		DatabaseDSN: v.GetString("DATABASE_DSN"),
		JWTSecret:   v.GetString("JWT_SECRET"),
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}
