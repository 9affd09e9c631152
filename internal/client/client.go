package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// ErrNotFound is returned when the server has no such app or window
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx answer from the server
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("desktop server returned %d", e.Status)
	}
	return fmt.Sprintf("desktop server returned %d: %s", e.Status, e.Message)
}

// Is lets errors.Is match ErrNotFound
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Config tunes a Client
type Config struct {
	BaseURL          string
	Timeout          time.Duration
	Retries          int
	RetryWait        time.Duration
	RequestsPerSec   float64 // 0 means unlimited
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

// DefaultConfig returns settings for a local server
func DefaultConfig() Config {
	return Config{
		BaseURL:          "http://localhost:8000",
		Timeout:          10 * time.Second,
		Retries:          2,
		RetryWait:        200 * time.Millisecond,
		BreakerThreshold: 5,
		BreakerCooldown:  10 * time.Second,
	}
}

// Client talks to the desktop REST API
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *breaker
	mu      sync.RWMutex
}

// New creates a client
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	// Pooled transport from retryablehttp; resty does the retrying
	pooled := retryablehttp.NewClient()

	r := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTransport(pooled.HTTPClient.Transport).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(4*cfg.RetryWait+time.Second).
		SetHeader("User-Agent", "deskctl/1.0").
		SetHeader("Accept", "application/json")
	r.AddRetryCondition(func(resp *resty.Response, err error) bool {
		return err == nil && resp.StatusCode() >= http.StatusInternalServerError
	})

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), max(1, int(cfg.RequestsPerSec)))
	}

	return &Client{
		resty:   r,
		limiter: limiter,
		breaker: newBreaker(cfg.BreakerThreshold, cfg.BreakerCooldown),
	}
}

// BaseURL returns the server address
func (c *Client) BaseURL() string {
	return c.resty.BaseURL
}

// BreakerState returns the circuit breaker state
func (c *Client) BreakerState() BreakerState {
	return c.breaker.State()
}

// request prepares a request once the limiter and breaker let it through
func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}
	if err := c.breaker.allow(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resty.R().SetContext(ctx).SetError(&APIError{}), nil
}

// do executes req and decodes the answer into out. Transport errors and 5xx
// answers count against the breaker; 4xx answers do not.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, prepare ...func(*resty.Request)) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	for _, p := range prepare {
		p(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.breaker.record(false)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	c.breaker.record(resp.StatusCode() < http.StatusInternalServerError)

	if resp.IsError() {
		apiErr, _ := resp.Error().(*APIError)
		if apiErr == nil {
			apiErr = &APIError{}
		}
		apiErr.Status = resp.StatusCode()
		return apiErr
	}
	return nil
}
