package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StoreBackendFile   = "file"
	StoreBackendMemory = "memory"
)

// ServerConfig holds process-level options. Command-line flags override values read from the file.
type ServerConfig struct {
	Port            string        `yaml:"port"`
	DataDir         string        `yaml:"data_dir"`
	StoreBackend    string        `yaml:"store_backend"` // "file" or "memory"
	MaxWorkers      int           `yaml:"max_workers"`
	MatchTimeout    time.Duration `yaml:"match_timeout"`
	MaxRequestBytes int64         `yaml:"max_request_bytes"`
}

// DefaultServerConfig returns the configuration used when no file is given.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:            "8080",
		DataDir:         "./catalog_data",
		StoreBackend:    StoreBackendFile,
		MaxWorkers:      4,
		MatchTimeout:    2 * time.Second,
		MaxRequestBytes: 10 << 20,
	}
}

// LoadServerConfig reads a YAML file on top of the defaults. Keys absent from the file keep their default.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's command line
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the combination of options.
func (c ServerConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	switch c.StoreBackend {
	case StoreBackendFile:
		if c.DataDir == "" {
			return fmt.Errorf("data_dir is required for the file store backend")
		}
	case StoreBackendMemory:
	default:
		return fmt.Errorf("unknown store_backend '%s' (expected file or memory)", c.StoreBackend)
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be at least 1")
	}
	if c.MatchTimeout < 0 {
		return fmt.Errorf("match_timeout cannot be negative")
	}
	if c.MaxRequestBytes <= 0 {
		return fmt.Errorf("max_request_bytes must be positive")
	}
	return nil
}
