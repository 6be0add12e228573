package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds user configuration from settings.json. All fields are
// optional; pointers distinguish "unset" from a zero value so the
// flag > env > settings > default precedence can be applied.
type Settings struct {
	DBPath         string `json:"dbPath,omitempty"`
	Listen         string `json:"listen,omitempty"`
	CommandTimeout *int   `json:"commandTimeout,omitempty"` // seconds per git invocation
	Debug          *bool  `json:"debug,omitempty"`
	MaxLogFiles    *int   `json:"maxLogFiles,omitempty"`
}

// Home returns the arbor home directory: $ARBOR_HOME or ~/.arbor
func Home() string {
	if home := os.Getenv("ARBOR_HOME"); home != "" {
		return home
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".arbor"
	}
	return filepath.Join(homeDir, ".arbor")
}

// GetDBPath returns the feature database path
func GetDBPath() string {
	return filepath.Join(Home(), "arbor.db")
}

// settingsPath returns the settings file path
func settingsPath() string {
	return filepath.Join(Home(), "settings.json")
}

// Load reads settings.json from the arbor home directory. A missing file
// yields empty settings, not an error.
func Load() (*Settings, error) {
	data, err := os.ReadFile(settingsPath())
	if os.IsNotExist(err) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &settings, nil
}

// Save writes settings.json to the arbor home directory
func (s *Settings) Save() error {
	if err := os.MkdirAll(Home(), 0755); err != nil {
		return fmt.Errorf("failed to create arbor home: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(settingsPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
