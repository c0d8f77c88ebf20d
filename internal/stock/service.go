package stock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jsodoma4050/business-intelligence/internal/apperror"
	"github.com/jsodoma4050/business-intelligence/internal/upstream"
)

// PriceFetcher is the upstream contract the service depends on.
type PriceFetcher interface {
	StockPrice(ctx context.Context, apiKey, ticker string) (*upstream.Quote, error)
}

// outcome is the result of one fan-out task: either a price or a failure
// message, never both.
type outcome struct {
	price    float64
	exchange string
	failure  string
}

func (o outcome) ok() bool { return o.failure == "" }

type Service struct {
	fetcher   PriceFetcher
	companies []Company
	now       func() time.Time
}

func NewService(fetcher PriceFetcher, companies []Company) *Service {
	cp := make([]Company, len(companies))
	copy(cp, companies)
	return &Service{
		fetcher:   fetcher,
		companies: cp,
		now:       time.Now,
	}
}

func (s *Service) Companies() []Company {
	cp := make([]Company, len(s.companies))
	copy(cp, s.companies)
	return cp
}

// Snapshot fetches every company's price concurrently and returns them in
// company order. A failed lookup becomes a failed Result; only a snapshot
// with zero successes is reported as an error.
func (s *Service) Snapshot(ctx context.Context, apiKey string) (*Snapshot, error) {
	outcomes := make([]outcome, len(s.companies))

	var g errgroup.Group
	for i, c := range s.companies {
		g.Go(func() error {
			outcomes[i] = s.fetchOne(ctx, apiKey, c.Ticker)
			return nil
		})
	}
	_ = g.Wait()

	results := make([]Result, len(s.companies))
	successes := 0
	for i, c := range s.companies {
		results[i] = toResult(c, outcomes[i])
		if results[i].Success {
			successes++
		}
	}

	if successes == 0 {
		return nil, apperror.New(apperror.Unavailable, "Failed to fetch any stock data").WithDetails(results)
	}

	return &Snapshot{
		Timestamp:         s.now().UTC(),
		DataPoints:        len(results),
		SuccessfulFetches: successes,
		Stocks:            results,
	}, nil
}

func (s *Service) fetchOne(ctx context.Context, apiKey, ticker string) outcome {
	q, err := s.fetcher.StockPrice(ctx, apiKey, ticker)
	if err != nil {
		var se *upstream.StatusError
		msg := fmt.Sprintf("request failed: %v", err)
		if errors.As(err, &se) {
			msg = fmt.Sprintf("upstream returned HTTP %d", se.StatusCode)
		}
		slog.Error("error fetching stock price", "ticker", ticker, "error", err)
		return outcome{failure: msg}
	}

	if q == nil || q.Price == nil || math.IsNaN(*q.Price) || math.IsInf(*q.Price, 0) {
		slog.Error("error fetching stock price", "ticker", ticker, "error", "missing price")
		return outcome{failure: fmt.Sprintf("no price data returned for %s", ticker)}
	}

	return outcome{price: *q.Price, exchange: q.Exchange}
}

func toResult(c Company, o outcome) Result {
	r := Result{
		Ticker:      c.Ticker,
		CompanyName: c.Name,
		Success:     o.ok(),
	}
	if o.ok() {
		p := o.price
		r.Price = &p
		r.Exchange = o.exchange
	} else {
		r.Error = o.failure
	}
	return r
}
