package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Username   string
	DateFormat string
	Accent     string
}

// Load reads configuration from file and env. Env var overrides use prefix SQUADTUI_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "squadtui", "squadtui.db"))
	v.SetDefault("ui.username", os.Getenv("USER"))
	v.SetDefault("ui.date_format", "02 Jan")
	v.SetDefault("ui.accent", "#8b5cf6")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SQUADTUI_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "squadtui"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SQUADTUI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("SQUADTUI_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "squadtui", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.username", cfg.UI.Username)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.accent", cfg.UI.Accent)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
