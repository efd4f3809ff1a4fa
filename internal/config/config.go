// Package config provides configuration types and defaults for soundpad.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// HistoryConfig holds play-history journal configuration.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // SQLite file, default under the state dir
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Keys use dot notation: "text.primary", "pad.active", etc.
	Colors map[string]string `mapstructure:"colors"`
}

// Config holds all configuration options for soundpad.
type Config struct {
	SoundDir     string        `mapstructure:"sound_dir"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
	ReadyTimeout time.Duration `mapstructure:"ready_timeout"`
	VolumeStep   float64       `mapstructure:"volume_step"`
	Watch        bool          `mapstructure:"watch"`
	History      HistoryConfig `mapstructure:"history"`
	LogLevel     string        `mapstructure:"log_level"`
	LogFile      string        `mapstructure:"log_file"`
	Theme        ThemeConfig   `mapstructure:"theme"`
}

// Defaults returns a Config with sensible default values.
// Path fields are left empty here; Load resolves them against the user
// config and state directories.
func Defaults() Config {
	return Config{
		SoundDir:     ".",
		TickInterval: 100 * time.Millisecond,
		ReadyTimeout: 2 * time.Second,
		VolumeStep:   0.25,
		Watch:        true,
		History: HistoryConfig{
			Enabled: true,
		},
		LogLevel: "info",
		Theme: ThemeConfig{
			Preset: "",
		},
	}
}

// DefaultConfigPath returns ~/.config/soundpad/soundpad.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "soundpad", "soundpad.yaml"), nil
}

// DefaultStateDir returns ~/.local/share/soundpad, where the history
// database and log file live unless configured otherwise.
func DefaultStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "soundpad"), nil
}

// Load reads configuration with precedence: explicit file (or the default
// location when path is empty), then SOUNDPAD_* environment variables, then
// defaults. Paths are tilde-expanded and empty state paths resolved before
// validation.
func Load(path string) (Config, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("sound_dir", defaults.SoundDir)
	v.SetDefault("tick_interval", defaults.TickInterval)
	v.SetDefault("ready_timeout", defaults.ReadyTimeout)
	v.SetDefault("volume_step", defaults.VolumeStep)
	v.SetDefault("watch", defaults.Watch)
	v.SetDefault("history.enabled", defaults.History.Enabled)
	v.SetDefault("history.path", defaults.History.Path)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("theme.preset", defaults.Theme.Preset)

	v.SetEnvPrefix("SOUNDPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if defaultPath, err := DefaultConfigPath(); err == nil {
		if _, statErr := os.Stat(defaultPath); statErr == nil {
			v.SetConfigFile(defaultPath)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("reading config %s: %w", defaultPath, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that all config values are usable.
func (c Config) Validate() error {
	if c.SoundDir == "" {
		return fmt.Errorf("sound_dir cannot be empty")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.ReadyTimeout <= 0 {
		return fmt.Errorf("ready_timeout must be positive, got %s", c.ReadyTimeout)
	}
	if c.VolumeStep <= 0 {
		return fmt.Errorf("volume_step must be positive, got %g", c.VolumeStep)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path cannot be empty when history is enabled")
	}
	return nil
}

// expandPaths tilde-expands configured paths and fills empty state paths
// with their defaults under the state dir.
func (c *Config) expandPaths() error {
	var err error
	if c.SoundDir, err = expandPath(c.SoundDir); err != nil {
		return fmt.Errorf("invalid sound_dir: %w", err)
	}

	stateDir, stateErr := DefaultStateDir()

	if c.History.Path == "" {
		if c.History.Enabled {
			if stateErr != nil {
				return fmt.Errorf("resolving history path: %w", stateErr)
			}
			c.History.Path = filepath.Join(stateDir, "history.db")
		}
	} else if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("invalid history.path: %w", err)
	}

	if c.LogFile == "" {
		if stateErr != nil {
			return fmt.Errorf("resolving log path: %w", stateErr)
		}
		c.LogFile = filepath.Join(stateDir, "soundpad.log")
	} else if c.LogFile, err = expandPath(c.LogFile); err != nil {
		return fmt.Errorf("invalid log_file: %w", err)
	}
	return nil
}

// expandPath expands a leading ~ and cleans the result. Relative paths are
// kept relative so sound_dir defaults to the working directory.
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Clean(path), nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Soundpad Configuration

# Directory scanned for sound files (default: current directory)
# Files must match NNN_Name (take).wav|mp3, e.g. 001_Birds (1).wav
# sound_dir: ~/sounds

# Poll interval for loop restarts
tick_interval: 100ms

# How long startup waits for sound decoding before giving up
ready_timeout: 2s

# Master volume change per +/- press (beep gain units; 0.25 ≈ 19%)
volume_step: 0.25

# Rescan the sound directory when files change
watch: true

# Play-history journal (SQLite)
history:
  enabled: true
  # path: ~/.local/share/soundpad/history.db

# Logging (the board never logs to the terminal)
log_level: info
# log_file: ~/.local/share/soundpad/soundpad.log

# Theme configuration
theme:
  # Use a preset (default, dracula, nord, high-contrast):
  # preset: dracula
  #
  # Force light or dark rendering (default: terminal detection):
  # mode: dark
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   pad.active: "#73F59F"
  #   status.error: "#FF5555"
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
