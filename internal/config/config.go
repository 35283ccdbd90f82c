// ABOUTME: Gym configuration management with backend selection.
// ABOUTME: Handles settings, preferences, and storage backend factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/gym/internal/autosave"
	"github.com/harperreed/gym/internal/storage"
)

// Config stores gym tool configuration.
type Config struct {
	// Backend selects the storage backend: "badger" (default) or "sqlite".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage. Badger puts gym.db
	// here, SQLite puts gym.sqlite here. Supports ~ expansion for home
	// directory. Defaults to ~/.local/share/gym.
	DataDir string `json:"data_dir,omitempty"`

	// AutosaveMs is the autosave debounce delay in milliseconds for
	// in-progress workout edits. Defaults to 500.
	AutosaveMs int `json:"autosave_ms,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "badger".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "badger"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetAutosaveDelay returns the configured autosave debounce delay.
func (c *Config) GetAutosaveDelay() time.Duration {
	if c.AutosaveMs <= 0 {
		return autosave.DefaultDelay
	}
	return time.Duration(c.AutosaveMs) * time.Millisecond
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case "badger":
		return storage.Open(filepath.Join(dataDir, "gym.db"))
	case "sqlite":
		return storage.OpenSQLite(filepath.Join(dataDir, "gym.sqlite"))
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "gym", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
