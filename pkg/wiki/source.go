// Package wiki fetches Wikipedia article summaries and splits them into
// translatable sentences.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wikibhasha/wikibhasha-engine/pkg/apperrors"
	"github.com/wikibhasha/wikibhasha-engine/pkg/config"
	"github.com/wikibhasha/wikibhasha-engine/pkg/retry"
)

// SummarySource returns the ordered sentences of an article summary.
type SummarySource interface {
	FetchSentences(ctx context.Context, articleTitle string) ([]string, error)
}

// summarySource fetches summaries from the Wikipedia REST API, with an
// optional Redis cache in front of the network call.
type summarySource struct {
	baseURL string
	client  *http.Client
	cache   *redis.Client // nil disables caching
	ttl     time.Duration
	logger  *zap.Logger
}

// NewSummarySource creates a summary source. Pass a nil redis client to
// disable caching.
func NewSummarySource(cfg *config.WikipediaConfig, cache *redis.Client, ttl time.Duration, logger *zap.Logger) SummarySource {
	return &summarySource{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.FetchTimeout},
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
	}
}

// summaryResponse is the subset of the REST summary payload we read.
type summaryResponse struct {
	Extract string `json:"extract"`
}

// FetchSentences retrieves the article summary and splits it into
// sentences. Failures of the upstream API surface as ErrSourceUnavailable.
func (s *summarySource) FetchSentences(ctx context.Context, articleTitle string) ([]string, error) {
	summary, err := s.fetchSummary(ctx, articleTitle)
	if err != nil {
		return nil, err
	}
	return SplitSentences(summary), nil
}

func (s *summarySource) fetchSummary(ctx context.Context, articleTitle string) (string, error) {
	cacheKey := "wiki:summary:" + strings.ToLower(articleTitle)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			return cached, nil
		}
		if err != redis.Nil {
			s.logger.Warn("Summary cache read failed", zap.Error(err))
		}
	}

	// Wikipedia titles use underscores for spaces.
	title := url.PathEscape(strings.ReplaceAll(articleTitle, " ", "_"))
	reqURL := fmt.Sprintf("%s/page/summary/%s", s.baseURL, title)

	// Transient upstream failures (5xx, rate limiting, network resets)
	// are retried; 404s and parse failures fail immediately.
	var payload summaryResponse
	err := retry.DoIfRetryable(ctx, retry.DefaultConfig(), func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("failed to build summary request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: summary request returned %d", apperrors.ErrSourceUnavailable, resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, payload.Extract, s.ttl).Err(); err != nil {
			s.logger.Warn("Summary cache write failed", zap.Error(err))
		}
	}

	return payload.Extract, nil
}

// SplitSentences splits a summary on ". " boundaries and trims each piece.
// The split deliberately mirrors the simple rule the annotation workflow
// was built around; empty pieces are dropped.
func SplitSentences(summary string) []string {
	parts := strings.Split(summary, ". ")
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// Ensure summarySource implements SummarySource at compile time.
var _ SummarySource = (*summarySource)(nil)
