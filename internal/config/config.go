package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName     string
	AppEnv      string
	AppPort     string
	SchoolName  string
	DatabaseURL string
	SQLitePath  string
	JWTSecret   string
	TokenTTL    time.Duration
	AdminUser   string
	AdminHash   string
	SeedEnabled bool
	SeedToken   string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("REPORTCARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Report Card API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("school.name", "Model Technology School")
	v.SetDefault("sqlite.path", "school.db")
	v.SetDefault("seed.enabled", false)
	v.SetDefault("token.ttl", "12h")

	ttl, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	cfg := Config{
		AppName:     v.GetString("app.name"),
		AppEnv:      v.GetString("app.env"),
		AppPort:     v.GetString("app.port"),
		SchoolName:  v.GetString("school.name"),
		DatabaseURL: v.GetString("database.url"),
		SQLitePath:  v.GetString("sqlite.path"),
		JWTSecret:   v.GetString("jwt.secret"),
		TokenTTL:    ttl,
		AdminUser:   v.GetString("admin.user"),
		AdminHash:   v.GetString("admin.password_hash"),
		SeedEnabled: v.GetBool("seed.enabled"),
		SeedToken:   v.GetString("seed.token"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}
