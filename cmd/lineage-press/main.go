// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lineage-press CLI: record set
// import and sync, record inspection, and family book generation.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lineage-press/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API tokens loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the lineage-press CLI.
var rootCmd = &cobra.Command{
	Use:   "lineage-press",
	Short: "Compile genealogical records into a generation-chapterized family book",
	Long: `lineage-press maintains a local genealogical record set — people and the
family unions linking them as parents, spouses, and children — and derives
from it a family book: every person assigned a generation by traversal from
the lineage's root ancestors, narrative entries grouped into generation
chapters, and a collated name index.

Records enter the set through YAML import or by syncing from a remote
tabular store; the book subcommand compiles and exports the report.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lineage-press.yaml or ~/.config/lineage-press/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "data", "base directory for local records (contains index/)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lineage-press")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lineage-press"))
		}
	}

	viper.SetEnvPrefix("LINEAGE_PRESS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
