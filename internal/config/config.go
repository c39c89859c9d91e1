// Package config loads server configuration from environment variables and an
// optional .env file.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs at startup.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// DBPath is the SQLite database file.
	DBPath string

	// JWTSecret signs session tokens. Required.
	JWTSecret string

	// JWTExpiry is how long sessions stay valid.
	JWTExpiry time.Duration

	// AllowedOrigins are the CORS origins for the SPA frontend.
	AllowedOrigins []string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads configuration, preferring environment variables over the .env
// file over defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig() // .env is optional

	v.SetDefault("ADDR", ":8080")
	v.SetDefault("DB_PATH", "./data/poolup.db")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("LOG_LEVEL", "info")

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return &Config{
		Addr:           v.GetString("ADDR"),
		DBPath:         v.GetString("DB_PATH"),
		JWTSecret:      secret,
		JWTExpiry:      time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		AllowedOrigins: v.GetStringSlice("ALLOWED_ORIGINS"),
		LogLevel:       v.GetString("LOG_LEVEL"),
	}, nil
}
