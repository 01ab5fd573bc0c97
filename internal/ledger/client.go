// Package ledger fetches purchase transactions from the external
// grocery-ledger service.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jpmardones/despensa/internal/metrics"
	domain "github.com/jpmardones/despensa/pkg/types"
)

const (
	defaultBaseURL = "https://api.gastify.cl/v1"
	defaultLimit   = 50
)

// Client retrieves recent transactions for a user.
type Client interface {
	RecentTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
}

// HTTPClient implements Client against the ledger REST API.
type HTTPClient struct {
	token       string
	baseURL     string
	limit       int
	client      *http.Client
	rateLimiter *RateLimiter
}

// Option configures the HTTPClient.
type Option func(*HTTPClient)

// WithBaseURL overrides the default ledger endpoint.
func WithBaseURL(u string) Option {
	return func(c *HTTPClient) {
		c.baseURL = u
	}
}

// WithLimit overrides how many transactions are requested per fetch.
func WithLimit(n int) Option {
	return func(c *HTTPClient) {
		c.limit = n
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and
// daily API call limits. When set, every fetch goes through Wait() first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *HTTPClient) {
		c.rateLimiter = r
	}
}

// NewHTTPClient creates a ledger API client authenticated with a
// static bearer token.
func NewHTTPClient(token string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		token:   token,
		baseURL: defaultBaseURL,
		limit:   defaultLimit,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type transactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	Total        int                  `json:"total"`
	Next         string               `json:"next"`
}

// RecentTransactions fetches the most recent transactions for a user,
// newest first, as reported by the ledger service.
func (c *HTTPClient) RecentTransactions(
	ctx context.Context,
	userID string,
) ([]domain.Transaction, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.LedgerDailyLimitHits.Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.LedgerAPICallsTotal.Inc()
		metrics.LedgerDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}

	u := fmt.Sprintf("%s/users/%s/transactions?%s",
		c.baseURL,
		url.PathEscape(userID),
		url.Values{"limit": []string{strconv.Itoa(c.limit)}}.Encode(),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"ledger API error (status %d): %s",
			resp.StatusCode,
			string(body),
		)
	}

	var apiResp transactionsResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing transactions response: %w", err)
	}

	return apiResp.Transactions, nil
}
