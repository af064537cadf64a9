package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the termfetch configuration
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Network   NetworkConfig   `mapstructure:"network"`
	Probes    ProbesConfig    `mapstructure:"probes"`
	SpeedTest SpeedTestConfig `mapstructure:"speedtest"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

// LoggingConfig controls the rotated log file
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// NetworkConfig holds the public address endpoints
type NetworkConfig struct {
	IPv4URL string        `mapstructure:"ipv4_url"`
	IPv6URL string        `mapstructure:"ipv6_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ProbesConfig selects where hardware facts come from
type ProbesConfig struct {
	Source         string        `mapstructure:"source"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	ExporterURL    string        `mapstructure:"exporter_url"`
}

// SpeedTestConfig pins the speed test server; zero picks the nearest one
type SpeedTestConfig struct {
	ServerID int `mapstructure:"server_id"`
}

// DashboardConfig controls the interactive UI
type DashboardConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// Load reads configuration from path, the environment and built-in defaults.
// An explicit path must exist; with an empty path the platform default file is
// read when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TERMFETCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if def := GetDefaultConfigPath(); fileExists(def) {
		v.SetConfigFile(def)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", def, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)

	v.SetDefault("network.ipv4_url", "https://api.ipify.org")
	v.SetDefault("network.ipv6_url", "https://api6.ipify.org")
	v.SetDefault("network.timeout", 10*time.Second)

	v.SetDefault("probes.source", "exec")
	v.SetDefault("probes.command_timeout", time.Duration(0))

	v.SetDefault("speedtest.server_id", 0)

	v.SetDefault("dashboard.refresh_interval", time.Second)

	UpdateConfigDefaults(v)
}

func validate(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", cfg.Logging.Level)
	}
	if cfg.Logging.File == "" {
		return errors.New("logging.file is required")
	}
	if cfg.Logging.MaxSizeMB < 1 {
		return errors.New("logging.max_size_mb must be at least 1")
	}
	if cfg.Logging.MaxBackups < 0 {
		return errors.New("logging.max_backups must not be negative")
	}

	if err := validateURL("network.ipv4_url", cfg.Network.IPv4URL); err != nil {
		return err
	}
	if err := validateURL("network.ipv6_url", cfg.Network.IPv6URL); err != nil {
		return err
	}
	if cfg.Network.Timeout < time.Second {
		return errors.New("network.timeout must be at least 1 second")
	}
	if cfg.Network.Timeout > 2*time.Minute {
		return errors.New("network.timeout must not exceed 2 minutes")
	}

	switch cfg.Probes.Source {
	case "exec", "native":
	case "exporter":
		if cfg.Probes.ExporterURL == "" {
			return errors.New("probes.exporter_url is required when probes.source is exporter")
		}
	default:
		return fmt.Errorf("probes.source must be one of exec, native, exporter (got %q)", cfg.Probes.Source)
	}
	if cfg.Probes.CommandTimeout < 0 {
		return errors.New("probes.command_timeout must not be negative")
	}

	if cfg.SpeedTest.ServerID < 0 {
		return errors.New("speedtest.server_id must not be negative")
	}

	if cfg.Dashboard.RefreshInterval < 100*time.Millisecond {
		return errors.New("dashboard.refresh_interval must be at least 100ms")
	}

	return nil
}

func validateURL(key, url string) error {
	if url == "" {
		return fmt.Errorf("%s is required", key)
	}
	if !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") {
		return fmt.Errorf("%s must start with http:// or https:// (got %q)", key, url)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
