// Package config handles PantryKit configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all configuration
type Config struct {
	// Paths
	DataDir string `json:"data_dir"`

	// Server
	Server ServerConfig `json:"server"`

	// Domain
	Inventory InventoryConfig `json:"inventory"`
	Reminders RemindersConfig `json:"reminders"`

	// Features
	Features FeatureConfig `json:"features"`
}

// ServerConfig for the HTTP server
type ServerConfig struct {
	Port int    `json:"port"`
	Host string `json:"host"`
}

// InventoryConfig tunes the status engine
type InventoryConfig struct {
	GlobalLowThreshold   float64 `json:"global_low_threshold"`
	ExpiringWindowDays   int     `json:"expiring_window_days"`
	PerishableWindowDays int     `json:"perishable_window_days"`
}

// RemindersConfig tunes the background sweep
type RemindersConfig struct {
	Enabled            bool    `json:"enabled"`
	SweepIntervalMins  int     `json:"sweep_interval_mins"`
	QuietHoursStart    int     `json:"quiet_hours_start"` // hour of day, inclusive
	QuietHoursEnd      int     `json:"quiet_hours_end"`   // hour of day, exclusive
	RetentionDays      int     `json:"retention_days"`
	MinVoiceConfidence float64 `json:"min_voice_confidence"`
}

// FeatureConfig for feature flags
type FeatureConfig struct {
	EnableVoice     bool `json:"enable_voice"`
	EnableFestivals bool `json:"enable_festivals"`
	DebugMode       bool `json:"debug_mode"`
}

// Default returns default configuration
func Default() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		DataDir: filepath.Join(home, ".pantrykit"),
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Inventory: InventoryConfig{
			GlobalLowThreshold:   1,
			ExpiringWindowDays:   2,
			PerishableWindowDays: 4,
		},
		Reminders: RemindersConfig{
			Enabled:            true,
			SweepIntervalMins:  30,
			QuietHoursStart:    22,
			QuietHoursEnd:      7,
			RetentionDays:      30,
			MinVoiceConfidence: 0.6,
		},
		Features: FeatureConfig{
			EnableVoice:     true,
			EnableFestivals: true,
			DebugMode:       false,
		},
	}
}

// Load loads config from file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = filepath.Join(cfg.DataDir, "config.json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg.applyEnv(), nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg.applyEnv(), nil
}

// applyEnv overrides selected settings from the environment
func (c *Config) applyEnv() *Config {
	if port := os.Getenv("PANTRYKIT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if dir := os.Getenv("PANTRYKIT_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	return c
}

// Save saves config to file
func (c *Config) Save(path string) error {
	if path == "" {
		path = filepath.Join(c.DataDir, "config.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
