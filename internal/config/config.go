package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"Server"`
	Database DatabaseConfig `mapstructure:"Database"`
	AI       AIConfig       `mapstructure:"AI"`
	Autosave AutosaveConfig `mapstructure:"Autosave"`
	Prefs    PrefsConfig    `mapstructure:"Prefs"`
	Log      LogConfig      `mapstructure:"Log"`
}

type ServerConfig struct {
	Address string `mapstructure:"Address"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"URL"`
}

type AIConfig struct {
	BaseURL    string `mapstructure:"BaseURL"`
	APIKey     string `mapstructure:"APIKey"`
	Model      string `mapstructure:"Model"`
	WebhookURL string `mapstructure:"WebhookURL"`
}

type AutosaveConfig struct {
	Debounce time.Duration `mapstructure:"Debounce"`
}

type PrefsConfig struct {
	Path string `mapstructure:"Path"`
}

type LogConfig struct {
	Level  string `mapstructure:"Level"`
	Pretty bool   `mapstructure:"Pretty"`
}

// NewConfig reads the config file at path if it exists and overlays
// environment variables on top.
func NewConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.BindEnv("Server.Address", "SERVER_ADDRESS")
	v.BindEnv("Database.URL", "POSTGRES_CONN")
	v.BindEnv("AI.BaseURL", "AI_BASE_URL")
	v.BindEnv("AI.APIKey", "AI_API_KEY")
	v.BindEnv("AI.Model", "AI_MODEL")
	v.BindEnv("AI.WebhookURL", "AI_WEBHOOK_URL")
	v.BindEnv("Prefs.Path", "PREFS_PATH")
	v.BindEnv("Log.Level", "LOG_LEVEL")

	v.SetDefault("Server.Address", ":8080")
	v.SetDefault("AI.Model", "gemini-2.5-flash")
	v.SetDefault("Autosave.Debounce", 1500*time.Millisecond)
	v.SetDefault("Prefs.Path", "prefs.json")
	v.SetDefault("Log.Level", "info")

	if err := v.ReadInConfig(); err != nil {
		// a missing config file is fine, environment variables carry the rest
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("config file not read, using environment: %v\n", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database configuration is incomplete: POSTGRES_CONN is required")
	}

	return &cfg, nil
}
