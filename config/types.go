package config

import (
	"time"
)

// Config represents the complete configuration structure
type Config struct {
	BattleNet BattleNetConfig `mapstructure:"battlenet"`
	Filter    FilterConfig    `mapstructure:"filter"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// BattleNetConfig holds the API credentials and client settings
type BattleNetConfig struct {
	ClientID     string          `mapstructure:"client_id"`
	ClientSecret string          `mapstructure:"client_secret"`
	Region       string          `mapstructure:"region"`
	Locale       string          `mapstructure:"locale"`
	Timeout      time.Duration   `mapstructure:"timeout"`
	TokenLeeway  time.Duration   `mapstructure:"token_leeway"`
	RateLimit    RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig throttles requests on the client side. Zero disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// FilterConfig contains named filter expressions
type FilterConfig map[string]string

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
