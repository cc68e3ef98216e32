// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds client configuration values loaded from file or environment variables.
type Config struct {
	APIBaseURL     string  `mapstructure:"API_BASE_URL"`
	TokenPath      string  `mapstructure:"TOKEN_PATH"`
	TokenRedisURL  string  `mapstructure:"TOKEN_REDIS_URL"`
	RequestTimeout int     `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	LogLevel       string  `mapstructure:"LOG_LEVEL"`
	Env            string  `mapstructure:"APP_ENV"`
	TracingEnabled bool    `mapstructure:"TRACING_ENABLED"`
	TraceExporter  string  `mapstructure:"TRACE_EXPORTER"`
	OTLPEndpoint   string  `mapstructure:"OTLP_ENDPOINT"`
	SamplerRatio   float64 `mapstructure:"TRACE_SAMPLER_RATIO"`

	// Devserver settings, used only by cmd/devserver.
	DevServerPort string `mapstructure:"DEVSERVER_PORT"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	SeedUsers     int    `mapstructure:"SEED_USERS"`
}

// LoadConfig loads client configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("launchpad")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; environment variables and defaults
	// are enough to run against a local devserver.
	_ = viper.ReadInConfig()

	viper.SetDefault("API_BASE_URL", "http://localhost:5000/api")
	viper.SetDefault("TOKEN_PATH", defaultTokenPath())
	viper.SetDefault("TOKEN_REDIS_URL", "")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACE_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACE_SAMPLER_RATIO", 1.0)
	viper.SetDefault("DEVSERVER_PORT", "5000")
	viper.SetDefault("JWT_SECRET", "devserver-secret-not-for-production")
	viper.SetDefault("SEED_USERS", 0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	if c.TokenPath == "" && c.TokenRedisURL == "" {
		return errors.New("TOKEN_PATH or TOKEN_REDIS_URL is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	switch c.TraceExporter {
	case "stdout", "otlp":
	default:
		return fmt.Errorf("unsupported TRACE_EXPORTER %q (want stdout or otlp)", c.TraceExporter)
	}
	return nil
}

// defaultTokenPath returns the per-user location of the persisted credential,
// the client-side analogue of browser local storage.
func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".launchpad-token"
	}
	return filepath.Join(dir, "launchpad", "token")
}
