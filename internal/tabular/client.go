// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabular is the thin query client for the remote tabular store
// the genealogical record set lives in. It reads the People and Unions
// tables through the store's records API and maps rows onto the shared
// data model, preserving the row order the store returns since downstream
// traversal depends on it.
package tabular

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/lineage-press/internal/httputil"
	"github.com/pdiddy/lineage-press/pkg/types"
)

const (
	peopleTable = "People"
	unionsTable = "Unions"

	defaultTimeout = 30 * time.Second
)

// Client queries one document of the remote tabular store.
type Client struct {
	baseURL    string
	docID      string
	token      string
	userAgent  string
	maxRetries int
	httpClient *http.Client
}

// NewClient builds a client from the remote configuration. The API token
// comes from cfg or, when empty, stays unset and requests go out
// unauthenticated (useful against local test servers).
func NewClient(cfg types.RemoteConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		docID:      cfg.DocID,
		token:      cfg.APIToken,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// recordsEnvelope is the records API response shape: one object per row,
// fields keyed by column name.
type recordsEnvelope struct {
	Records []struct {
		ID     int64           `json:"id"`
		Fields json.RawMessage `json:"fields"`
	} `json:"records"`
}

// personRow mirrors the People table columns.
type personRow struct {
	Handle         string `json:"handle"`
	Name           string `json:"name"`
	Gender         string `json:"gender"`
	BirthYear      int    `json:"birth_year"`
	DeathYear      int    `json:"death_year"`
	Living         bool   `json:"living"`
	Patrilineal    bool   `json:"patrilineal"`
	GenerationHint int    `json:"generation_hint"`
}

// unionRow mirrors the Unions table columns. Children is a JSON array
// column holding child handles in birth order.
type unionRow struct {
	Handle   string   `json:"handle"`
	Father   string   `json:"father"`
	Mother   string   `json:"mother"`
	Children []string `json:"children"`
}

// FetchPeople reads the People table in row order.
func (c *Client) FetchPeople(ctx context.Context) ([]types.Person, error) {
	env, err := c.fetchTable(ctx, peopleTable)
	if err != nil {
		return nil, err
	}

	people := make([]types.Person, 0, len(env.Records))
	for _, rec := range env.Records {
		var row personRow
		if err := json.Unmarshal(rec.Fields, &row); err != nil {
			return nil, fmt.Errorf("parsing person record %d: %w", rec.ID, err)
		}
		if row.Handle == "" {
			return nil, fmt.Errorf("person record %d has no handle", rec.ID)
		}
		people = append(people, types.Person{
			Handle:         row.Handle,
			Name:           row.Name,
			Gender:         types.Gender(row.Gender),
			BirthYear:      row.BirthYear,
			DeathYear:      row.DeathYear,
			Living:         row.Living,
			Patrilineal:    row.Patrilineal,
			GenerationHint: row.GenerationHint,
		})
	}
	return people, nil
}

// FetchUnions reads the Unions table in row order.
func (c *Client) FetchUnions(ctx context.Context) ([]types.FamilyUnion, error) {
	env, err := c.fetchTable(ctx, unionsTable)
	if err != nil {
		return nil, err
	}

	unions := make([]types.FamilyUnion, 0, len(env.Records))
	for _, rec := range env.Records {
		var row unionRow
		if err := json.Unmarshal(rec.Fields, &row); err != nil {
			return nil, fmt.Errorf("parsing union record %d: %w", rec.ID, err)
		}
		if row.Handle == "" {
			return nil, fmt.Errorf("union record %d has no handle", rec.ID)
		}
		unions = append(unions, types.FamilyUnion{
			Handle:   row.Handle,
			Father:   row.Father,
			Mother:   row.Mother,
			Children: row.Children,
		})
	}
	return unions, nil
}

func (c *Client) fetchTable(ctx context.Context, table string) (*recordsEnvelope, error) {
	reqURL := fmt.Sprintf("%s/api/docs/%s/tables/%s/records", c.baseURL, c.docID, table)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("records API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("records API returned HTTP %d for table %s", resp.StatusCode, table)
	}

	var env recordsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("parsing records response: %w", err)
	}
	return &env, nil
}
