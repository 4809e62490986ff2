// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv fetches candidate papers and full-text PDFs from arXiv.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gogojjh/everyday-my-arxiv/internal/httputil"
	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

// arxivAPIBase is the arXiv query endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// Client queries the arXiv Atom API.
type Client struct {
	HTTP *http.Client
	Cfg  types.ArxivConfig
}

// NewClient builds a Client with a timeout-bounded http.Client.
func NewClient(cfg types.ArxivConfig) *Client {
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Cfg:  cfg,
	}
}

// Recent fetches the most recently submitted papers in the configured
// categories, newest first. A network or decode failure returns an error
// and no papers; the API never yields a partial record, entries missing
// an identifier are skipped.
func (c *Client) Recent(ctx context.Context) ([]types.Paper, error) {
	if len(c.Cfg.Categories) == 0 {
		return nil, fmt.Errorf("no arXiv categories configured")
	}

	terms := make([]string, len(c.Cfg.Categories))
	for i, cat := range c.Cfg.Categories {
		terms[i] = "cat:" + cat
	}

	params := url.Values{
		"search_query": {strings.Join(terms, " OR ")},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(c.Cfg.MaxResults)},
		"sortBy":       {"submittedDate"},
		"sortOrder":    {"descending"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var papers []types.Paper
	for _, entry := range feed.Entries {
		id := extractArxivID(entry.ID)
		if id == "" {
			continue
		}

		p := types.Paper{
			ID:         id,
			Title:      collapseWhitespace(entry.Title),
			Abstract:   collapseWhitespace(entry.Summary),
			Comment:    strings.TrimSpace(entry.Comment),
			JournalRef: strings.TrimSpace(entry.JournalRef),
			DOI:        strings.TrimSpace(entry.DOI),
		}

		for _, a := range entry.Authors {
			p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
		}
		for _, cat := range entry.Categories {
			p.Categories = append(p.Categories, cat.Term)
		}
		p.PrimaryCategory = entry.PrimaryCategory.Term
		if p.PrimaryCategory == "" && len(p.Categories) > 0 {
			p.PrimaryCategory = p.Categories[0]
		}

		// Malformed dates stay zero; the date filter drops such papers.
		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			p.Published = t
		}
		if t, parseErr := time.Parse(time.RFC3339, entry.Updated); parseErr == nil {
			p.Updated = t
		}

		for _, l := range entry.Links {
			if l.Title == "pdf" || l.Type == "application/pdf" {
				p.PDFURL = l.Href
				break
			}
		}
		if p.PDFURL == "" {
			p.PDFURL = "https://arxiv.org/pdf/" + id
		}

		papers = append(papers, p)
	}
	return papers, nil
}

// FetchPDF downloads the paper's full text. Unavailability is signalled
// with ok=false, not an error: the caller falls back to abstract-only
// analysis and the run continues.
func (c *Client) FetchPDF(ctx context.Context, pdfURL string) (data []byte, ok bool) {
	if pdfURL == "" {
		return nil, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", c.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID              string         `xml:"id"`
	Title           string         `xml:"title"`
	Summary         string         `xml:"summary"`
	Published       string         `xml:"published"`
	Updated         string         `xml:"updated"`
	Authors         []atomAuthor   `xml:"author"`
	Categories      []atomCategory `xml:"category"`
	PrimaryCategory atomCategory   `xml:"http://arxiv.org/schemas/atom primary_category"`
	Comment         string         `xml:"http://arxiv.org/schemas/atom comment"`
	JournalRef      string         `xml:"http://arxiv.org/schemas/atom journal_ref"`
	DOI             string         `xml:"http://arxiv.org/schemas/atom doi"`
	Links           []atomLink     `xml:"link"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}

// extractArxivID pulls the bare arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

// collapseWhitespace trims the string and folds the newline-indented
// continuation lines arXiv puts in titles and abstracts into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
