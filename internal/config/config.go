// Package config loads service configuration from a YAML file with
// environment-variable overrides. Missing file or fields fall back to
// defaults so the service runs with zero configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root service configuration.
type Config struct {
	ListenAddr  string          `yaml:"listen_addr"`
	GuestUserID string          `yaml:"guest_user_id"`
	Inference   InferenceConfig `yaml:"inference"`
	Storage     StorageConfig   `yaml:"storage"`
	Catalog     CatalogConfig   `yaml:"catalog"`
	Logging     LoggingConfig   `yaml:"logging"`
}

// InferenceConfig configures the external interpretation service client.
type InferenceConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the delegation timeout as a duration.
func (c InferenceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StorageConfig configures the SQLite data directory.
type StorageConfig struct {
	DataPath string `yaml:"data_path"`
}

// CatalogConfig configures resource catalog seeding.
type CatalogConfig struct {
	// SeedFile, when set, is a JSON resource list that seeds the catalog
	// and is watched for changes.
	SeedFile string `yaml:"seed_file"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the zero-configuration defaults.
func Default() *Config {
	return &Config{
		ListenAddr:  ":8080",
		GuestUserID: "guest",
		Inference: InferenceConfig{
			BaseURL:        "http://localhost:5000",
			TimeoutSeconds: 10,
		},
		Storage: StorageConfig{DataPath: "./data"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the config at path, layering file values over defaults and
// environment overrides over both. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults only.
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MINDFULCHAT_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("AI_SERVICE_URL"); v != "" {
		c.Inference.BaseURL = v
	}
	if v := os.Getenv("MINDFULCHAT_INFERENCE_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Inference.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("MINDFULCHAT_DATA_PATH"); v != "" {
		c.Storage.DataPath = v
	}
	if v := os.Getenv("MINDFULCHAT_SEED_FILE"); v != "" {
		c.Catalog.SeedFile = v
	}
	if v := os.Getenv("MINDFULCHAT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("MINDFULCHAT_GUEST_USER"); v != "" {
		c.GuestUserID = v
	}
}

func (c *Config) validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	if c.Inference.BaseURL == "" {
		return fmt.Errorf("inference.base_url must not be empty")
	}
	if c.Inference.TimeoutSeconds <= 0 {
		return fmt.Errorf("inference.timeout_seconds must be positive")
	}
	return nil
}
