package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all TUI configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	UI     UIConfig     `yaml:"ui"`
}

// ServerConfig contains backend connection settings
type ServerConfig struct {
	BaseURL   string `yaml:"base_url"`
	StreamURL string `yaml:"stream_url"`
}

// UIConfig for UI preferences
type UIConfig struct {
	Language      string `yaml:"language"`        // "fr" or "en"
	RefreshRateMs int    `yaml:"refresh_rate_ms"` // notification polling interval
	PageSize      int    `yaml:"page_size"`
	EnableStream  bool   `yaml:"enable_stream"` // live notifications over WebSocket
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:   "http://localhost:8080/api/v1",
			StreamURL: "ws://localhost:8080/ws/notifications",
		},
		UI: UIConfig{
			Language:      "fr",
			RefreshRateMs: 30000,
			PageSize:      10,
			EnableStream:  true,
		},
	}
}

// Load loads configuration from file, falling back to defaults. The
// SIS_API_URL environment variable overrides the configured base URL.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findConfigFile()
	}

	cfg := Default()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if url := os.Getenv("SIS_API_URL"); url != "" {
		cfg.Server.BaseURL = url
	}
	if cfg.UI.PageSize <= 0 {
		cfg.UI.PageSize = 10
	}
	if cfg.UI.Language == "" {
		cfg.UI.Language = "fr"
	}

	return cfg, nil
}

// Save saves configuration to file
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// findConfigFile searches for config in standard locations
func findConfigFile() string {
	locations := []string{
		"./sisexpo-tui.yaml",
		"./config/tui.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "sisexpo", "tui.yaml"),
		filepath.Join(os.Getenv("HOME"), ".sisexpo", "tui.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}
