// Package config loads service configuration from defaults, an optional
// config file, and RISKSCORE_* environment variables (highest precedence).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the risk API.
type Config struct {
	HTTP      HTTPConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Webhook   WebhookConfig
	SeedFile  string
}

// HTTPConfig controls the listener and its timeouts.
type HTTPConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json", "text"
}

// RateLimitConfig is the per-client token bucket applied to scoring routes.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// WebhookConfig controls outbound notification delivery.
type WebhookConfig struct {
	Timeout time.Duration
}

// EnvPrefix is prepended to every environment key, e.g. RISKSCORE_HTTP_PORT.
const EnvPrefix = "RISKSCORE"

// Load builds a Config. path may be empty, in which case RISKSCORE_CONFIG is
// consulted; a missing file at an explicit path is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Port:            v.GetInt("http.port"),
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			IdleTimeout:     v.GetDuration("http.idle_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("ratelimit.rps"),
			Burst: v.GetInt("ratelimit.burst"),
		},
		Webhook: WebhookConfig{
			Timeout: v.GetDuration("webhook.timeout"),
		},
		SeedFile: v.GetString("seed.file"),
	}

	// Most PaaS platforms inject PORT; it takes precedence over everything.
	if envPort := os.Getenv("PORT"); envPort != "" {
		p, err := strconv.Atoi(envPort)
		if err != nil {
			return nil, fmt.Errorf("PORT must be an integer, got %q", envPort)
		}
		cfg.HTTP.Port = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 15*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("ratelimit.rps", 20)
	v.SetDefault("ratelimit.burst", 40)
	v.SetDefault("webhook.timeout", 5*time.Second)
	v.SetDefault("seed.file", "data/seed.json")
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port must be in 1..65535, got %d", c.HTTP.Port))
	}
	if c.RateLimit.RPS <= 0 {
		errs = append(errs, fmt.Errorf("ratelimit.rps must be positive, got %g", c.RateLimit.RPS))
	}
	if c.RateLimit.Burst <= 0 {
		errs = append(errs, fmt.Errorf("ratelimit.burst must be positive, got %d", c.RateLimit.Burst))
	}
	if c.Webhook.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("webhook.timeout must be positive, got %s", c.Webhook.Timeout))
	}
	return errors.Join(errs...)
}

// Address returns the listen address for the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.HTTP.Port)
}
