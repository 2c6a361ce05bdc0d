package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const appName = "cmdpal"

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := filepath.Join(Dir(), "config.yaml")
	if err := loadFromFile(cfg, configPath); err != nil {
		// Config file is optional, don't fail if it doesn't exist
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	loadFromEnv(cfg)

	return cfg, nil
}

// Dir returns the application config/data directory. Both the config file
// and the task/history stores live here.
func Dir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appName)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return appName
	}
	return filepath.Join(homeDir, ".config", appName)
}

// TasksFile returns the path of the task collection store.
func TasksFile() string {
	return filepath.Join(Dir(), "tasks.json")
}

// HistoryFile returns the path of the execution history store.
func HistoryFile() string {
	return filepath.Join(Dir(), "history.json")
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Expand environment variables in the config file
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// loadFromEnv loads configuration overrides from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("CMDPAL_SCORE_CUTOFF"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 100 {
			cfg.Search.ScoreCutoff = n
		}
	}
	if v := os.Getenv("CMDPAL_LOG_LEVEL"); v != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.Level = v
	}
}
