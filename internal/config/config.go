// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"cloud-portal/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Server contains HTTP server settings
	Server ServerConfig `json:"server"`

	// Database contains store settings
	Database DatabaseConfig `json:"database"`

	// Tariffs contains tariff-file settings
	Tariffs TariffsConfig `json:"tariffs"`

	// Cancellation contains the cancellation policy settings
	Cancellation CancellationConfig `json:"cancellation"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// DatabaseConfig contains store settings
type DatabaseConfig struct {
	// Path is the SQLite database file path
	Path string `json:"path"`
}

// TariffsConfig contains tariff-file settings
type TariffsConfig struct {
	// File is the path to the HCL tariff definition file
	File string `json:"file"`
}

// CancellationConfig contains the cancellation policy settings
type CancellationConfig struct {
	// LockoutFinalMonth blocks cancellation within the final month
	// before an order expires. Off by default.
	LockoutFinalMonth bool `json:"lockout_final_month"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".cloud-portal", "portal.db")

	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Addr: ":3001",
		},
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Tariffs: TariffsConfig{
			File: "tariffs.hcl",
		},
		Cancellation: CancellationConfig{
			LockoutFinalMonth: false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
