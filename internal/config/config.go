//-------------------------------------------------------------------------
//
// salesdw - Sales Warehouse Loader
//
// Copyright (c) 2025 - 2026, the salesdw authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for salesdw.
// Configuration is loaded from config files, SALESDW_* environment
// variables, and CLI flags. Flags take precedence over environment
// variables, which take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultDatabase is the warehouse file used when no path is configured.
const DefaultDatabase = "sales.db"

// Config holds all configuration for salesdw.
type Config struct {
	// Database is the path to the SQLite warehouse file.
	Database string `mapstructure:"database"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Init holds configuration for the init subcommand.
	Init InitConfig `mapstructure:"init"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`
}

// InitConfig holds configuration for warehouse initialization.
type InitConfig struct {
	// DropExisting drops existing tables before initialization.
	DropExisting bool `mapstructure:"drop_existing"`

	// Seed inserts the built-in sample dataset after schema creation.
	Seed bool `mapstructure:"seed"`

	// SeedSales generates this many fake sale records instead of the
	// built-in sample dataset. Implies Seed.
	SeedSales int `mapstructure:"seed_sales"`
}

// LoadConfig holds configuration for CSV loading.
type LoadConfig struct {
	// SkipInvalid skips records that fail validation instead of
	// aborting the whole run.
	SkipInvalid bool `mapstructure:"skip_invalid"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Database: DefaultDatabase,
		LogLevel: "info",
	}
}

// Load reads configuration from config files and the environment.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salesdw.yaml
// 3. ~/.config/salesdw/salesdw.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("salesdw")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salesdw"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// SALESDW_DATABASE, SALESDW_LOG_LEVEL, ...
	v.SetEnvPrefix("SALESDW")
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range []string{"database", "log_level"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment: %w", err)
		}
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database path is required")
	}
	return nil
}

// ValidateInit checks configuration required for the init command.
func (c *Config) ValidateInit() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Init.SeedSales < 0 {
		return fmt.Errorf("seed_sales must be non-negative")
	}
	return nil
}
