package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// PlatformDefaults returns platform-specific default values
type PlatformDefaults struct {
	LogFile     string
	ConfigPath  string
	ExporterURL string
}

// GetPlatformDefaults returns platform-specific defaults based on runtime.GOOS.
// termfetch runs as the interactive user, so files live in per-user directories.
func GetPlatformDefaults() PlatformDefaults {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}

	defaults := PlatformDefaults{
		LogFile:    filepath.Join(cacheDir, "termfetch", "termfetch.log"),
		ConfigPath: filepath.Join(configDir, "termfetch", "config.yaml"),
	}

	switch runtime.GOOS {
	case "windows":
		defaults.ExporterURL = "http://localhost:9182/metrics" // windows_exporter
	default:
		defaults.ExporterURL = "http://localhost:9100/metrics" // node_exporter
	}
	return defaults
}

// GetDefaultConfigPath returns the platform-specific default config path
func GetDefaultConfigPath() string {
	return GetPlatformDefaults().ConfigPath
}

// UpdateConfigDefaults sets viper defaults that depend on the platform
func UpdateConfigDefaults(v interface{}) {
	type viper interface {
		SetDefault(key string, value interface{})
	}

	if viperInstance, ok := v.(viper); ok {
		defaults := GetPlatformDefaults()

		viperInstance.SetDefault("probes.exporter_url", defaults.ExporterURL)
		viperInstance.SetDefault("logging.file", defaults.LogFile)
	}
}
