package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		DSN string
	}
	Auth struct {
		Secret       string
		SessionTTL   time.Duration
		SecureCookie bool
	}
	Log struct {
		Level string
	}
}

// Load reads configuration from environment variables and optional config files.
// Variables use the NOTES_ prefix, e.g. NOTES_DATABASE_DSN or NOTES_AUTH_SECRET.
func Load() (Config, error) {
	// optional; real environment variables win over .env entries
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("NOTES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.dsn", "data/notes.db")
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.sessionttl", "24h")
	v.SetDefault("auth.securecookie", false)
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the values the server cannot start without are present.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("database dsn is required")
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth secret is required")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("auth session ttl must be positive")
	}
	return nil
}
