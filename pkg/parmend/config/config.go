package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Components map[string]string `mapstructure:"components"`
}

// EngineConfig configures the external repair engine.
type EngineConfig struct {
	// Binary is the engine executable; resolved on PATH when relative.
	Binary string `mapstructure:"binary"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// DebounceSeconds is how long a set must stay quiet before repair.
	DebounceSeconds int `mapstructure:"debounce_seconds"`

	// Repair controls whether watch mode repairs or only verifies.
	Repair bool `mapstructure:"repair"`
}

// Config represents the application configuration.
type Config struct {
	Purge   bool          `mapstructure:"purge"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Setup configures v as the single source of parmend configuration: the
// explicit config file when given, otherwise config.yaml from the standard
// locations, plus PARMEND_-prefixed environment variables and defaults.
//
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/parmend/config.yaml
//   - $HOME/.config/parmend/config.yaml
//
// A missing config file is not an error; an explicitly named one that
// cannot be read is.
func Setup(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "parmend"))
		}
	}

	v.SetEnvPrefix("PARMEND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// setDefaults registers every configuration default on v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("purge", DefaultPurge)
	v.SetDefault("engine.binary", DefaultEngineBinary)
	v.SetDefault("watch.debounce_seconds", DefaultWatchDebounce)
	v.SetDefault("watch.repair", DefaultWatchRepair)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "") // Empty means use logging.DefaultLogPath
	// No default component overrides: a pinned per-component level would
	// silently defeat a configured logging.level.
}

// Load unmarshals v, previously prepared by Setup, into a Config. Values
// bound to v after Setup (command-line flags) take their usual precedence.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "parmend"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "parmend"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}
