package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/bubblehearth/blizzard"
)

// EnvPrefix prefixes environment overrides, e.g. BUBBLEHEARTH_BATTLENET_CLIENT_ID.
const EnvPrefix = "BUBBLEHEARTH"

// Load loads the configuration from file and environment. Without an explicit
// path a missing config file is not an error, so credentials can come from the
// environment alone.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".bubblehearth"))
		}

		// Check /etc
		v.AddConfigPath("/etc/bubblehearth/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// ConfigFileUsed reports which file Load would read, for diagnostics.
func ConfigFileUsed(configPath string) string {
	if configPath != "" {
		return configPath
	}
	for _, dir := range searchPaths() {
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func searchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".bubblehearth"))
	}
	return append(paths, "/etc/bubblehearth/")
}

// setDefaults sets default configuration values. Every key that can be
// overridden from the environment needs a default so Unmarshal sees it.
func setDefaults(v *viper.Viper) {
	// Battle.net defaults
	v.SetDefault("battlenet.client_id", "")
	v.SetDefault("battlenet.client_secret", "")
	v.SetDefault("battlenet.region", string(blizzard.RegionUS))
	v.SetDefault("battlenet.locale", "")
	v.SetDefault("battlenet.timeout", blizzard.DefaultTimeout)
	v.SetDefault("battlenet.token_leeway", blizzard.DefaultTokenLeeway)
	v.SetDefault("battlenet.rate_limit.requests_per_second", 0)
	v.SetDefault("battlenet.rate_limit.burst", 0)

	// Output defaults
	v.SetDefault("output.format", "table")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.BattleNet.ClientID == "" {
		return fmt.Errorf("battlenet.client_id is required")
	}

	if cfg.BattleNet.ClientSecret == "" || cfg.BattleNet.ClientSecret == "your-client-secret-here" {
		return fmt.Errorf("battlenet.client_secret must be set to a valid secret")
	}

	if _, err := blizzard.ParseRegion(cfg.BattleNet.Region); err != nil {
		return fmt.Errorf("battlenet.region: %w", err)
	}

	if cfg.BattleNet.Locale != "" {
		if _, err := blizzard.ParseLocale(cfg.BattleNet.Locale); err != nil {
			return fmt.Errorf("battlenet.locale: %w", err)
		}
	}

	if cfg.BattleNet.Timeout < 0 {
		return fmt.Errorf("battlenet.timeout must not be negative")
	}
	if cfg.BattleNet.TokenLeeway < 0 {
		return fmt.Errorf("battlenet.token_leeway must not be negative")
	}

	rl := cfg.BattleNet.RateLimit
	if rl.RequestsPerSecond < 0 || rl.Burst < 0 {
		return fmt.Errorf("battlenet.rate_limit values must not be negative")
	}
	if rl.RequestsPerSecond > 0 && rl.Burst == 0 {
		return fmt.Errorf("battlenet.rate_limit.burst must be at least 1 when requests_per_second is set")
	}

	// Validate output format
	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
	}
	if !validOutputs[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s", cfg.Output.Format)
	}

	// Validate logging level
	if err := ValidateLogLevel(cfg.Logging.Level); err != nil {
		return err
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateLogLevel reports an error for levels other than debug, info, warn and error.
func ValidateLogLevel(level string) error {
	if !validLogLevels[level] {
		return fmt.Errorf("invalid logging level: %s", level)
	}
	return nil
}
