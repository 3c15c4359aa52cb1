package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sidepane/log"
	"sidepane/ui/layout"
)

const (
	ConfigFileName = "config.json"
	configDirName  = ".sidepane"
)

// Theme names accepted in the config and state files.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// GetConfigPath returns the path of the config file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// Config represents the application configuration
type Config struct {
	// Layout holds the sidebar width bounds and collapse breakpoint.
	Layout layout.Options `json:"layout"`
	// DefaultSection is the section shown when no last section is stored.
	DefaultSection string `json:"default_section"`
	// Theme is "dark", "light" or "auto" to ask the terminal.
	Theme string `json:"theme"`
	// ReduceMotion makes the sidebar jump to its new width instead of
	// animating.
	ReduceMotion bool `json:"reduce_motion"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Layout:         layout.DefaultOptions(),
		DefaultSection: "overview",
		Theme:          ThemeAuto,
		ReduceMotion:   false,
	}
}

// Validate checks the layout options and theme name.
func (c *Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	switch c.Theme {
	case ThemeAuto, ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	return nil
}

// Overrides are settings given on the command line. They win over the config
// file, including a file reloaded while running.
type Overrides struct {
	// Layout fields left at zero keep the file's value.
	Layout       layout.Options
	ReduceMotion bool
}

// Apply merges o over c and validates the result.
func (o Overrides) Apply(c *Config) error {
	c.Layout = c.Layout.Merge(o.Layout)
	if o.ReduceMotion {
		c.ReduceMotion = true
	}
	return c.Validate()
}

// LoadConfigFrom reads and validates the config at path. Fields missing from
// the file keep their defaults.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file at %s: %w", path, err)
	}
	return config, nil
}

// LoadConfig loads the config file, creating it with defaults when missing.
// It never fails: a corrupt or invalid file is backed up and the defaults
// are used.
func LoadConfig() *Config {
	configPath, err := GetConfigPath()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	config, err := LoadConfigFrom(configPath)
	if err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		log.ErrorLog.Printf("%v\nConfig content preview: %s", err, preview)

		// Backup the corrupted config before falling back to defaults
		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}

		return DefaultConfig()
	}

	return config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig validates and writes the configuration.
func SaveConfig(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	return saveConfig(config)
}
