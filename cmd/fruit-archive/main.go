// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fruit-archive CLI.
// Subcommands: extract (archive to catalog), db (SQLite price store),
// report (price increases and basket estimate), version.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the fruit-archive CLI.
var rootCmd = &cobra.Command{
	Use:   "fruit-archive",
	Short: "Consolidate yearly fruit price spreadsheets into one catalog",
	Long: `fruit-archive walks an archive of yearly folders (fruit-2013, fruit-2014,
...) holding one price spreadsheet per fruit, extracts the Fresh and Frozen
price rows, and writes a single catalog keyed by fruit, form, and year.

The catalog can be loaded into a local SQLite store for filtering and export,
and summarized with the report command.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./fruit-archive.yaml or ~/.config/fruit-archive/fruit-archive.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fruit-archive")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fruit-archive"))
		}
	}

	viper.SetEnvPrefix("FRUIT_ARCHIVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
