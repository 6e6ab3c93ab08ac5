package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	JWTSecret    string
	TokenTTL     time.Duration
	CORSOrigin   string
	LogLevel     string
}

// Load reads configuration from environment variables, applying defaults
// for everything except the token signing secret, which must be set.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("port", 8000)
	v.SetDefault("database_path", "./shopstack.db")
	v.SetDefault("token_ttl_hours", 24)
	v.SetDefault("cors_origin", "*")
	v.SetDefault("log_level", "info")
	v.AutomaticEnv()

	secret := v.GetString("jwt_secret")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	ttlHours := v.GetInt("token_ttl_hours")
	if ttlHours <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL_HOURS must be positive, got %d", ttlHours)
	}

	return &Config{
		ServerPort:   v.GetInt("port"),
		DatabasePath: v.GetString("database_path"),
		JWTSecret:    secret,
		TokenTTL:     time.Duration(ttlHours) * time.Hour,
		CORSOrigin:   v.GetString("cors_origin"),
		LogLevel:     v.GetString("log_level"),
	}, nil
}
