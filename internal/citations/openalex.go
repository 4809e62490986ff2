// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citations looks up citation counts for papers via the OpenAlex
// API. The lookup is an optional enrichment: any failure degrades to a
// zero count and the pipeline continues.
package citations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gogojjh/everyday-my-arxiv/internal/httputil"
	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

// openAlexWorksBase is the OpenAlex Works endpoint. Declared as a var so
// tests can substitute an httptest server.
var openAlexWorksBase = "https://api.openalex.org/works"

// Client queries OpenAlex for citation counts.
type Client struct {
	HTTP *http.Client
	Cfg  types.CitationsConfig

	// Email is sent as the mailto parameter for polite pool access.
	Email string
}

// NewClient builds a Client with a timeout-bounded http.Client.
func NewClient(cfg types.CitationsConfig, email string) *Client {
	return &Client{
		HTTP:  &http.Client{Timeout: cfg.Timeout},
		Cfg:   cfg,
		Email: email,
	}
}

// Count looks up the paper by title and returns its citation count and a
// cited-by URL. A paper OpenAlex does not know yields (0, "", nil). Only
// transport and decode problems surface as errors, and callers are
// expected to treat those as a degraded lookup, not a run failure.
func (c *Client) Count(ctx context.Context, paper types.Paper) (int, string, error) {
	if paper.Title == "" {
		return 0, "", nil
	}

	params := url.Values{
		"search":   {paper.Title},
		"per_page": {"1"},
	}
	if c.Email != "" {
		params.Set("mailto", c.Email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openAlexWorksBase+"?"+params.Encode(), nil)
	if err != nil {
		return 0, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return 0, "", fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, "", fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var body worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, "", fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	if len(body.Results) == 0 {
		return 0, "", nil
	}

	work := body.Results[0]
	return work.CitedByCount, work.ID, nil
}

// OpenAlex API JSON structures.
type worksResponse struct {
	Results []work `json:"results"`
}

type work struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CitedByCount int    `json:"cited_by_count"`
}
