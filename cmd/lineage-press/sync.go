// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lineage-press/internal/secrets"
	"github.com/pdiddy/lineage-press/internal/tabular"
	"github.com/pdiddy/lineage-press/pkg/types"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull the record set from the remote tabular store",
	Long: `Sync fetches the People and Unions tables from the remote tabular
store and replaces the local record set with them, preserving the remote
row order. The API token is read from .secrets/tabular-api-token unless
given via --token or the config file.`,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg := remoteConfig(cmd)
	if cfg.BaseURL == "" || cfg.DocID == "" {
		return fmt.Errorf("remote store not configured: set remote.base_url and remote.doc_id (or --base-url/--doc)")
	}

	client := tabular.NewClient(cfg)
	ctx := context.Background()

	people, err := client.FetchPeople(ctx)
	if err != nil {
		return fmt.Errorf("fetching people: %w", err)
	}
	unions, err := client.FetchUnions(ctx)
	if err != nil {
		return fmt.Errorf("fetching unions: %w", err)
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ReplaceAll(ctx, people, unions); err != nil {
		return fmt.Errorf("replacing local records: %w", err)
	}

	fmt.Printf("Synced %d people and %d unions.\n", len(people), len(unions))
	return nil
}

// remoteConfig resolves the remote store settings: flags first, then the
// config file, with the API token falling back to the secrets directory.
func remoteConfig(cmd *cobra.Command) types.RemoteConfig {
	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = viper.GetString("remote.base_url")
	}
	docID, _ := cmd.Flags().GetString("doc")
	if docID == "" {
		docID = viper.GetString("remote.doc_id")
	}
	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = viper.GetString("remote.api_token")
	}
	maxRetries, _ := cmd.Flags().GetInt("max-retries")

	return types.RemoteConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "lineage-press/" + version,
		},
		BaseURL:    baseURL,
		DocID:      docID,
		APIToken:   secretDefault(secrets.TabularAPIToken, token),
		MaxRetries: maxRetries,
	}
}

func init() {
	syncCmd.Flags().String("base-url", "", "remote tabular store API base URL")
	syncCmd.Flags().String("doc", "", "remote document ID holding the People and Unions tables")
	syncCmd.Flags().String("token", "", "API token (overrides .secrets/tabular-api-token)")
	syncCmd.Flags().Int("max-retries", 3, "retry attempts on rate-limited calls")

	rootCmd.AddCommand(syncCmd)
}
