package transcript

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jsodoma4050/business-intelligence/internal/apperror"
	"github.com/jsodoma4050/business-intelligence/internal/upstream"
)

// Fetcher is the upstream contract the service depends on.
type Fetcher interface {
	EarningsTranscript(ctx context.Context, apiKey, ticker string, year, quarter int) (map[string]any, error)
}

type Service struct {
	fetcher Fetcher
	now     func() time.Time
}

func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher, now: time.Now}
}

// Get fetches the transcript for req. The upstream payload is returned as-is
// with a fetchedAt timestamp added.
func (s *Service) Get(ctx context.Context, apiKey string, req Request) (map[string]any, error) {
	payload, err := s.fetcher.EarningsTranscript(ctx, apiKey, req.Ticker, req.Year, req.Quarter)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, apperror.Wrap(apperror.NotFound,
				fmt.Sprintf("No transcript found for %s Q%d %d", req.Ticker, req.Quarter, req.Year), err)
		}
		return nil, apperror.Wrap(apperror.Upstream, "Failed to fetch transcript from upstream", err)
	}

	if !hasTranscript(payload) {
		return nil, apperror.New(apperror.Upstream,
			fmt.Sprintf("No transcript data available for %s Q%d %d", req.Ticker, req.Quarter, req.Year))
	}

	payload["fetchedAt"] = s.now().UTC().Format(time.RFC3339)
	return payload, nil
}

func hasTranscript(payload map[string]any) bool {
	v, ok := payload["transcript"]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s) != ""
	}
	return true
}
