package news

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://gnews.io/api/v4/search"

// Client queries the external news search endpoint. It holds no state
// beyond its configuration; a failed or misconfigured search yields an
// empty result so callers fall back to placeholder content.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a search client. An empty apiKey is allowed: every
// search then returns no results and the reader degrades to placeholders.
func NewClient(baseURL, apiKey, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Search runs a keyword query and maps the response to NewsItems tagged
// with the given topic. Searches are fixed to Brazilian Portuguese results
// sorted by publication date. Any failure (missing credential, transport
// error, non-2xx status, malformed body) returns an empty list, never an
// error the caller must handle.
func (c *Client) Search(ctx context.Context, query, topic string) []NewsItem {
	if c.apiKey == "" {
		slog.Debug("Search skipped, no API key configured", "topic", topic)
		return nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("lang", "pt")
	params.Set("country", "br")
	params.Set("max", "20")
	params.Set("token", c.apiKey)
	params.Set("sortby", "publishedAt")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		slog.Error("Failed to build search request", "topic", topic, "error", err)
		return nil
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Search request failed", "topic", topic, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		slog.Error("Search returned non-success status", "topic", topic,
			"status", resp.StatusCode, "body", string(body))
		return nil
	}

	var parsed gnewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		slog.Error("Failed to decode search response", "topic", topic, "error", err)
		return nil
	}

	items := make([]NewsItem, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		items = append(items, c.mapArticle(a, topic))
	}

	slog.Debug("Search completed", "topic", topic, "items", len(items))
	return items
}

// mapArticle normalizes one raw article, filling the defaults the client
// relies on: a sentinel title, empty description/link, and "now" when the
// source omits the publication time.
func (c *Client) mapArticle(a gnewsArticle, topic string) NewsItem {
	item := NewsItem{
		Title:       a.Title,
		Description: a.Description,
		Link:        a.URL,
		ImageURL:    a.Image,
		PublishedAt: a.PublishedAt,
		Topic:       topic,
	}
	if item.Title == "" {
		item.Title = "Sem título"
	}
	if item.PublishedAt == "" {
		item.PublishedAt = time.Now().Format(time.RFC3339)
	}
	return item
}
