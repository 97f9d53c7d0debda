// Package websearch fetches live web context for a query: a search provider
// first, an instant-answer provider as fallback, both normalized into a
// bounded text blob plus source list.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jerewitdashifts/chat-platform/internal/model"
)

const (
	serperTopN  = 5
	webMaxChars = 2500

	defaultSerperURL = "https://google.serper.dev/search"
)

// SerperClient calls the Serper search API.
type SerperClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewSerperClient creates a Serper client. An empty apiKey is allowed; callers
// check Configured before issuing requests.
func NewSerperClient(apiKey string, httpClient *http.Client) *SerperClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SerperClient{
		apiKey:     apiKey,
		baseURL:    defaultSerperURL,
		httpClient: httpClient,
	}
}

// Configured reports whether an API key is present.
func (c *SerperClient) Configured() bool {
	return c.apiKey != ""
}

type serperRequest struct {
	Query string `json:"q"`
}

type serperOrganic struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type serperResponse struct {
	Organic []serperOrganic `json:"organic"`
}

// Search queries Serper and returns concatenated snippets from the top
// organic results, capped at webMaxChars, plus their sources in provider
// order.
func (c *SerperClient) Search(ctx context.Context, query string) (string, []model.WebSource, error) {
	body, err := json.Marshal(serperRequest{Query: query})
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("search request returned status %d", resp.StatusCode)
	}

	var parsed serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	organic := parsed.Organic
	if len(organic) > serperTopN {
		organic = organic[:serperTopN]
	}

	var parts []string
	var sources []model.WebSource
	for _, o := range organic {
		if o.Snippet != "" {
			parts = append(parts, o.Snippet)
		}
		if o.Link != "" {
			sources = append(sources, model.WebSource{
				Title:   o.Title,
				Link:    o.Link,
				Snippet: o.Snippet,
			})
		}
	}

	return capChars(strings.Join(parts, "\n\n"), webMaxChars), sources, nil
}

// capChars truncates s to at most n characters.
func capChars(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
