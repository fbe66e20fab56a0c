package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/davorm/dailybrief/models"
)

const defaultBaseURL = "https://gnews.io/api/v4"

type GNewsClient struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewGNewsClient(logger *slog.Logger, httpClient *http.Client, apiKey string) *GNewsClient {
	return &GNewsClient{
		logger:     logger,
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
	}
}

// Fetch queries the GNews search endpoint for English articles about topic.
// Articles come back in provider relevance order and stay that way.
func (c *GNewsClient) Fetch(ctx context.Context, topic string, maxArticles int) ([]models.Article, error) {
	query := url.Values{}
	query.Set("q", topic)
	query.Set("max", fmt.Sprintf("%d", maxArticles))
	query.Set("lang", "en")
	query.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return nil, fmt.Errorf("gnews returned status %d: %s", resp.StatusCode, string(body))
	}

	var result models.GNewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode gnews response: %w", err)
	}

	articles := make([]models.Article, 0, len(result.Articles))
	for _, a := range result.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		articles = append(articles, models.Article{
			Title: a.Title,
			URL:   a.URL,
		})
	}

	c.logger.Debug("fetched articles", "topic", topic, "count", len(articles))
	return articles, nil
}
