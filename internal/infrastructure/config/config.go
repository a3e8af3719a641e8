// Package config loads the 15Five session credentials. The tool
// authenticates with artifacts copied out of a logged-in browser, so
// the config is short-lived and operators rotate it often; everything
// here is built around making that rotation painless.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/darylhandley/15five-utils/pkg/storage"
)

const (
	configFile = "config.yaml"

	defaultBaseURL = "https://my.15five.com"
)

// Config holds everything needed to talk to 15Five on an operator's
// behalf.
type Config struct {
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	SessionID string `yaml:"session_id" mapstructure:"session_id"`
	CSRFToken string `yaml:"csrf_token" mapstructure:"csrf_token"`
}

// Validate reports the first missing credential. The tool cannot do
// anything without a session, so this is checked at startup rather than
// on first request.
func (c *Config) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("session_id is not set: run '15five setup' or set FIFTEENFIVE_SESSION_ID")
	}
	if c.CSRFToken == "" {
		return fmt.Errorf("csrf_token is not set: run '15five setup' or set FIFTEENFIVE_CSRF_TOKEN")
	}
	return nil
}

// Path returns the location of the config file under the tool's data
// directory in the user's home.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, storage.UtilsDir, configFile), nil
}

// Load reads the config from ~/.15fiveutils/config.yaml, falling back
// to ./15five.yaml for project-local overrides. Environment variables
// prefixed FIFTEENFIVE_ take precedence over both, so a rotated session
// can be injected without touching any file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, storage.UtilsDir))
	}

	v.SetEnvPrefix("FIFTEENFIVE")
	v.AutomaticEnv()
	_ = v.BindEnv("base_url")
	_ = v.BindEnv("session_id")
	_ = v.BindEnv("csrf_token")
	v.SetDefault("base_url", defaultBaseURL)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No home config yet; a project-local file may cover it, and
		// the env alone is also enough.
		v.SetConfigName("15five")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config under the data directory with owner-only
// permissions; the file holds live session credentials.
func Save(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
