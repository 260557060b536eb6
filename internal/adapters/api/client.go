package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/craftchain-go/internal/application/middleware"
	"github.com/andrescamacho/craftchain-go/internal/domain/shared"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxRetries   = 3
	defaultBackoffBase  = 500 * time.Millisecond
	defaultRequestRate  = 10
	defaultBreakerTrips = 5
	defaultCoolDown     = 30 * time.Second
)

// RESTClient talks to a craftchain daemon over /api/v1
type RESTClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *Breaker
	baseURL     string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
}

// NewRESTClient creates a client with default retry and rate settings
func NewRESTClient(baseURL string) *RESTClient {
	return NewRESTClientWithConfig(baseURL, defaultMaxRetries, defaultBackoffBase, nil)
}

// NewRESTClientWithConfig creates a client with custom retry settings.
// If clock is nil, uses RealClock.
func NewRESTClientWithConfig(baseURL string, maxRetries int, backoffBase time.Duration, clock shared.Clock) *RESTClient {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RESTClient{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: rate.NewLimiter(rate.Limit(defaultRequestRate), defaultRequestRate),
		breaker:     NewBreaker(defaultBreakerTrips, defaultCoolDown, clock),
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		clock:       clock,
	}
}

func (c *RESTClient) ListItems(ctx context.Context, req ItemListRequest) (*ItemListView, error) {
	query := url.Values{}
	if req.Category != "" {
		query.Set("category", req.Category)
	}
	if req.RawOnly {
		query.Set("raw", "true")
	}
	if req.Search != "" {
		query.Set("search", req.Search)
	}

	var view ItemListView
	if err := c.request(ctx, http.MethodGet, withQuery("/api/v1/items", query), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *RESTClient) GetItem(ctx context.Context, itemID string) (*ItemDetailView, error) {
	var view ItemDetailView
	if err := c.request(ctx, http.MethodGet, "/api/v1/items/"+url.PathEscape(itemID), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *RESTClient) BuildChain(ctx context.Context, req ChainRequest) (*ChainView, error) {
	query := url.Values{}
	if req.MaxDepth != nil {
		query.Set("depth", strconv.Itoa(*req.MaxDepth))
	}
	if len(req.Selections) > 0 {
		pairs := make([]string, 0, len(req.Selections))
		for itemID, idx := range req.Selections {
			pairs = append(pairs, fmt.Sprintf("%s:%d", itemID, idx))
		}
		query.Set("select", strings.Join(pairs, ","))
	}
	if len(req.Collapsed) > 0 {
		query.Set("collapse", strings.Join(req.Collapsed, ","))
	}

	path := withQuery("/api/v1/items/"+url.PathEscape(req.ItemID)+"/chain", query)
	var view ChainView
	if err := c.request(ctx, http.MethodGet, path, nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *RESTClient) ComputePlan(ctx context.Context, req PlanRequest) (*PlanView, error) {
	var view PlanView
	if err := c.request(ctx, http.MethodPost, "/api/v1/plans", req, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// addJitter returns a duration between 50% and 150% of d
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64()
	return time.Duration(float64(d) * jitter)
}

func (c *RESTClient) request(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	return c.breaker.Do(func() error {
		return c.doWithRetry(ctx, method, path, body, result)
	})
}

// doWithRetry retries network failures, 429 and 5xx with exponential backoff.
// Other 4xx answers are decoded into their typed errors and returned at once.
func (c *RESTClient) doWithRetry(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		status, header, respBody, err := c.send(ctx, method, path, payload)
		backoff := addJitter(c.backoffBase * time.Duration(1<<attempt))

		switch {
		case err != nil:
			lastErr = fmt.Errorf("network error: %w", err)
		case status == http.StatusTooManyRequests:
			retryAfter := parseRetryAfter(header.Get("Retry-After"))
			lastErr = &middleware.RateLimitedError{Request: method + " " + path, RetryAfter: retryAfter}
			if retryAfter > 0 {
				backoff = retryAfter
			}
		case status >= 500:
			lastErr = fmt.Errorf("server error (%d): %s", status, decodeError(respBody).Error)
		case status >= 400:
			return decodeError(respBody).AsError()
		case status < 200 || status >= 300:
			return fmt.Errorf("unexpected status %d", status)
		default:
			if result != nil {
				if err := json.Unmarshal(respBody, result); err != nil {
					return fmt.Errorf("failed to unmarshal response: %w", err)
				}
			}
			return nil
		}

		if attempt >= c.maxRetries {
			break
		}
		if ctx.Err() != nil {
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		}
		c.clock.Sleep(backoff)
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *RESTClient) send(ctx context.Context, method, path string, payload []byte) (int, http.Header, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, resp.Header, respBody, nil
}

func parseRetryAfter(raw string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func decodeError(body []byte) ErrorView {
	var view ErrorView
	if err := json.Unmarshal(body, &view); err != nil || view.Error == "" {
		return ErrorView{Error: strings.TrimSpace(string(body)), Kind: string(KindInternal)}
	}
	return view
}
