package config

// Config represents the main application configuration.
type Config struct {
	Search    SearchConfig    `yaml:"search"`
	Recommend RecommendConfig `yaml:"recommend"`
	History   HistoryConfig   `yaml:"history"`
	Watcher   WatcherConfig   `yaml:"watcher"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SearchConfig holds fuzzy search settings.
type SearchConfig struct {
	// ScoreCutoff is the minimum 0-100 score for a match to be shown.
	ScoreCutoff int `yaml:"score_cutoff"`
	// Limit caps the number of filtered results.
	Limit int `yaml:"limit"`
}

// RecommendConfig holds recommendation banner settings.
type RecommendConfig struct {
	// Count is the number of directory-scoped recent tasks to show.
	Count int `yaml:"count"`
}

// HistoryConfig holds execution history settings.
type HistoryConfig struct {
	// MaxEntries caps the history file; oldest entries are dropped first.
	MaxEntries int `yaml:"max_entries"`
}

// WatcherConfig controls live reload of the tasks file.
type WatcherConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			ScoreCutoff: 60,
			Limit:       50,
		},
		Recommend: RecommendConfig{
			Count: 5,
		},
		History: HistoryConfig{
			MaxEntries: 200,
		},
		Watcher: WatcherConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "warn",
		},
	}
}
