// Package config loads and saves the persistent TUI settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds persistent TUI settings stored at <profileDir>/tui.json.
type Config struct {
	Theme       string `json:"theme,omitempty"`
	CodeTheme   string `json:"code_theme,omitempty"`
	Width       int    `json:"width,omitempty"` // render mode width
	EchoDelayMS int    `json:"echo_delay_ms,omitempty"`
	LogLevel    string `json:"log_level,omitempty"`
	LogFormat   string `json:"log_format,omitempty"`
	LogFile     string `json:"log_file,omitempty"`
}

const filename = "tui.json"

// Load reads <profileDir>/tui.json and returns the parsed Config.
// If the file is absent or unreadable, a default Config is returned.
// Fields missing from the file keep their defaults.
func Load(profileDir string) Config {
	cfg := Default()
	data, err := os.ReadFile(filepath.Join(profileDir, filename))
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default()
	}
	return cfg
}

// Save writes cfg to <profileDir>/tui.json, creating the directory if needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(profileDir, filename), data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Default returns the built-in settings. An empty Theme means "detect from
// the terminal background".
func Default() Config {
	return Config{
		CodeTheme:   "monokai",
		Width:       80,
		EchoDelayMS: 800,
		LogLevel:    "info",
		LogFormat:   "json",
	}
}

// LogPath returns the configured log file, or the default location inside
// profileDir.
func (c Config) LogPath(profileDir string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(profileDir, "logs", "aicat.log")
}
