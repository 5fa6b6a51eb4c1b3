// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lineage-press/internal/store"
	"github.com/pdiddy/lineage-press/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import <lineage.yaml>",
	Short: "Import a lineage YAML file into the local record store",
	Long: `Import reads a lineage file — flat people and union lists in YAML —
and ingests it into the local SQLite record store. New records are
appended, changed records are updated in place, unchanged records are
skipped. Unions referencing unknown people are rejected so the stored
record set stays referentially consistent.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Ingest(context.Background(), os.Stdout, args[0])
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d record(s) failed import", summary.Failed)
	}
	return nil
}

// openStore opens the record store rooted at the --data-dir flag.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = "data"
	}
	return store.NewStore(types.StoreConfig{DataDir: dataDir})
}

func init() {
	rootCmd.AddCommand(importCmd)
}
