//-------------------------------------------------------------------------
//
// salesdw - Sales Warehouse Loader
//
// Copyright (c) 2025 - 2026, the salesdw authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for salesdw.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/salesdw/salesdw/internal/config"
	"github.com/salesdw/salesdw/internal/logging"
	"github.com/salesdw/salesdw/pkg/version"
)

var (
	// Global flags
	cfgFile  string
	database string
	logLevel string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "salesdw",
		Short: "Star-schema sales warehouse loader",
		Long: `salesdw maintains a small SQLite star schema of customers,
products, and sales. It initializes the schema, loads flat CSV sales
records through a dimension-resolving ETL pipeline, and prints aggregate
sales reports.

Loading reconciles incoming records against existing dimension rows by
natural key, so repeated loads never duplicate customers or products
while sales facts are always appended.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./salesdw.yaml)")
	rootCmd.PersistentFlags().StringVar(&database, "database", "",
		"path to the warehouse database file (default: "+config.DefaultDatabase+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(reportCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if database != "" {
		cfg.Database = database
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
