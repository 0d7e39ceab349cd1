// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/store"
)

// --- Global Command Variables ---
var (
	databaseURL    string
	periodMode     string
	migrateVersion int

	rootCmd = &cobra.Command{
		Use:   "winroom",
		Short: "A cli to manage and query the win room dashboard",
		Long: `Winroom is a tool for operating the win room dashboard:
				running schema migrations, capturing daily health snapshots,
				and printing portfolio analytics from the terminal.`,
		SilenceUsage: true,
	}

	// --- Database ---
	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Run database schema migrations",
		RunE:  runMigrateCommand, // Defined in cmd_migrate.go
	}

	// --- Snapshots ---
	captureCmd = &cobra.Command{
		Use:   "capture",
		Short: "Capture today's health snapshot for every account",
		RunE:  runCaptureCommand, // Defined in cmd_capture.go
	}

	// --- Analytics ---
	waterfallCmd = &cobra.Command{
		Use:   "waterfall",
		Short: "Print the risk waterfall for the selected period",
		RunE:  runWaterfallCommand, // Defined in cmd_waterfall.go
	}
	kpisCmd = &cobra.Command{
		Use:   "kpis",
		Short: "Print the portfolio KPI summary",
		RunE:  runKPIsCommand, // Defined in cmd_kpis.go
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "",
		"PostgreSQL connection string (defaults to WINROOM_DATABASE_URL)")
	_ = viper.BindPFlag("database-url", rootCmd.PersistentFlags().Lookup("database-url"))

	migrateCmd.Flags().IntVar(&migrateVersion, "version", -1,
		"Target schema version (-1 latest, 0 rolls everything back)")
	waterfallCmd.Flags().StringVar(&periodMode, "period", "wow",
		"Analysis period: wow (week-over-week) or ytd (year-to-date)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(waterfallCmd)
	rootCmd.AddCommand(kpisCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	viper.SetConfigName(".winroom")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")

	viper.SetEnvPrefix("WINROOM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Println("error reading config file:", err)
		}
		// Config file not found is fine; env and flags cover it.
	}
}

// openStore connects to the configured PostgreSQL store.
func openStore(ctx context.Context) (*store.Postgres, error) {
	connStr := viper.GetString("database-url")
	if connStr == "" {
		return nil, fmt.Errorf("no database configured: set --database-url or WINROOM_DATABASE_URL")
	}
	return store.NewPostgres(ctx, connStr)
}
