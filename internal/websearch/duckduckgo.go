package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const defaultDuckDuckGoURL = "https://api.duckduckgo.com/"

// DuckDuckGoClient calls the DuckDuckGo instant-answer API. No key required.
type DuckDuckGoClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDuckDuckGoClient creates an instant-answer client.
func NewDuckDuckGoClient(httpClient *http.Client) *DuckDuckGoClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &DuckDuckGoClient{
		baseURL:    defaultDuckDuckGoURL,
		httpClient: httpClient,
	}
}

type instantAnswerResponse struct {
	Answer       string `json:"Answer"`
	AbstractText string `json:"AbstractText"`
	AbstractURL  string `json:"AbstractURL"`
}

// InstantAnswer returns a short direct-answer string and its source URL, both
// possibly empty.
func (c *DuckDuckGoClient) InstantAnswer(ctx context.Context, query string) (string, string, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	q.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to build instant-answer request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("instant-answer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("instant-answer request returned status %d", resp.StatusCode)
	}

	var parsed instantAnswerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", "", fmt.Errorf("failed to decode instant-answer response: %w", err)
	}

	text := parsed.Answer
	if text == "" {
		text = parsed.AbstractText
	}
	return text, parsed.AbstractURL, nil
}
