package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	// Password gates the dashboard. Plain text or a bcrypt hash from
	// `daysince passwd`. Empty disables the gate.
	Password string `yaml:"password,omitempty" json:"-"`

	// Storage
	Backend     string `yaml:"backend" json:"backend"`                               // json, sqlite or postgres
	StorePath   string `yaml:"store_path" json:"store_path"`                         // File for json and sqlite backends
	DatabaseURL string `yaml:"database_url,omitempty" json:"database_url,omitempty"` // Connection URL for postgres

	DefaultSort string `yaml:"default_sort" json:"default_sort"` // none, alphabetical or days
	ServerAddr  string `yaml:"server_addr" json:"server_addr"`   // Listen address for daysince-server

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// Dir returns the base directory, ~/.daysince unless DAYSINCE_HOME is set
func Dir() (string, error) {
	if dir := os.Getenv("DAYSINCE_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".daysince"), nil
}

// Path returns the config file location
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir, _ := Dir()
	storePath, logPath := "", ""
	if dir != "" {
		storePath = filepath.Join(dir, "timers.json")
		logPath = filepath.Join(dir, "logs", "daysince.log")
	}

	return &Config{
		Backend:     "json",
		StorePath:   storePath,
		DefaultSort: "none",
		ServerAddr:  ":8080",
		LogLevel:    "INFO",
		LogFile:     logPath,
		LogConsole:  false,
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// applyEnv lets DAYSINCE_* variables win over the file
func (c *Config) applyEnv() {
	c.Password = getEnv("DAYSINCE_PASSWORD", c.Password)
	c.Backend = getEnv("DAYSINCE_BACKEND", c.Backend)
	c.StorePath = getEnv("DAYSINCE_STORE", c.StorePath)
	c.DatabaseURL = getEnv("DAYSINCE_DATABASE_URL", c.DatabaseURL)
	c.DefaultSort = getEnv("DAYSINCE_SORT", c.DefaultSort)
	c.ServerAddr = getEnv("DAYSINCE_ADDR", c.ServerAddr)
	c.LogLevel = getEnv("DAYSINCE_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("DAYSINCE_LOG_FILE", c.LogFile)
	if v := os.Getenv("DAYSINCE_LOG_CONSOLE"); v != "" {
		c.LogConsole = v == "true" || v == "1"
	}
}

// StoreTarget returns what the configured backend opens: the database URL
// for postgres, the store path otherwise.
func (c *Config) StoreTarget() string {
	if c.Backend == "postgres" {
		return c.DatabaseURL
	}
	return c.StorePath
}

// Load loads config from ~/.daysince/config.yaml. A missing file yields
// the defaults. Environment overrides are applied either way.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads config from path
func LoadFile(path string) (*Config, error) {
	cfg, err := LoadFileSaved(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadSaved loads ~/.daysince/config.yaml without environment overrides.
// Anything that is saved back should start from here.
func LoadSaved() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFileSaved(path)
}

// LoadFileSaved reads path over the defaults, ignoring DAYSINCE_* variables
func LoadFileSaved(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save saves config to ~/.daysince/config.yaml
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes config to path. The file may hold the password, so it
// is only readable by the owner.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
