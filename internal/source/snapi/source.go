package snapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"livelaunch/internal/domain"
)

const SourceID = "snapi"

type Config struct {
	URL        string
	MaxAgeDays int
	Timeout    time.Duration
}

type response struct {
	Results []article `json:"results"`
}

type article struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url"`
	NewsSite    string `json:"news_site"`
	Summary     string `json:"summary"`
	PublishedAt string `json:"published_at"`
}

// Source reads the latest articles from the Spaceflight News API.
type Source struct {
	httpClient *http.Client
	url        string
	maxAge     time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		url:        cfg.URL,
		maxAge:     time.Duration(cfg.MaxAgeDays) * 24 * time.Hour,
		now:        time.Now,
		logger:     logger.With("source", SourceID),
	}
}

// Articles returns the first page of articles published within the
// recency window. Failures are logged and yield an empty slice.
func (s *Source) Articles(ctx context.Context) []domain.NewsArticle {
	resp, err := s.fetch(ctx)
	if err != nil {
		s.logger.Error("failed to fetch articles", "error", err)
		return nil
	}

	cutoff := s.now().Add(-s.maxAge)
	articles := make([]domain.NewsArticle, 0, len(resp.Results))

	for _, a := range resp.Results {
		publishedAt, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil {
			s.logger.Warn("failed to parse published_at",
				"external_id", a.ID,
				"published_at", a.PublishedAt,
			)
			continue
		}

		if publishedAt.Before(cutoff) {
			continue
		}

		articles = append(articles, domain.NewsArticle{
			ID:          a.ID,
			Title:       a.Title,
			URL:         a.URL,
			ImageURL:    a.ImageURL,
			NewsSite:    a.NewsSite,
			Summary:     a.Summary,
			PublishedAt: publishedAt,
		})
	}

	s.logger.Debug("fetched articles", "count", len(articles), "total", len(resp.Results))
	return articles
}

func (s *Source) fetch(ctx context.Context) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "LiveLaunch/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
