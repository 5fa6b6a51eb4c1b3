// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "lineage-press/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RemoteConfig holds settings for the remote tabular store the record set
// is synced from.
type RemoteConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the tabular store's API base (e.g. "https://grist.example.com").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// DocID identifies the document holding the People and Unions tables.
	DocID string `json:"doc_id" yaml:"doc_id"`

	// APIToken authenticates requests. Usually supplied via .secrets/
	// rather than the config file.
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty"`

	// MaxRetries is the number of retry attempts on rate-limited calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// StoreConfig holds settings for the local record store.
type StoreConfig struct {
	// DataDir is the base directory for local data (contains index/, imports/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// BookConfig holds settings for book synthesis and export.
type BookConfig struct {
	// FamilyName is the family/report label used on the title data.
	FamilyName string `json:"family_name" yaml:"family_name"`

	// Language is the BCP-47 tag selecting the collation used for the
	// name index (default "cs").
	Language string `json:"language" yaml:"language"`

	// OutputDir is the directory book exports are written to
	// (e.g. "output/books/").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// ProjectConfig groups all stage configurations.
type ProjectConfig struct {
	Remote RemoteConfig `json:"remote" yaml:"remote"`
	Store  StoreConfig  `json:"store" yaml:"store"`
	Book   BookConfig   `json:"book" yaml:"book"`
}
