package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	graphql "github.com/hasura/go-graphql-client"
	"golang.org/x/time/rate"
)

const (
	userAgent             = "profile-tui/1.0"
	defaultRequestsPerMin = 60
)

// DefaultTimeout bounds a request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// RequestContext returns a background context bounded by timeout, or by
// DefaultTimeout when timeout is not positive.
func RequestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// Client wraps the GraphQL client with rate limiting and auth.
type Client struct {
	gql     *graphql.Client
	limiter *rate.Limiter
	token   string
	mu      sync.RWMutex
}

// Option configures a Client.
type Option func(*options)

type options struct {
	requestsPerMin int
	timeout        time.Duration
	transport      http.RoundTripper
}

// WithRateLimit sets the number of requests allowed per minute.
func WithRateLimit(perMin int) Option {
	return func(o *options) {
		if perMin > 0 {
			o.requestsPerMin = perMin
		}
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		if rt != nil {
			o.transport = rt
		}
	}
}

// authTransport injects auth headers into every request and records how the
// round trip ended so failures can be categorised.
type authTransport struct {
	wrapped   http.RoundTripper
	tokenFunc func() string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", t.tokenFunc())
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.wrapped.RoundTrip(req)
	if rec := outcomeFrom(req.Context()); rec != nil {
		rec.record(resp, err)
	}
	return resp, err
}

// NewClient creates a new API client for the given endpoint and auth token.
// The token is sent verbatim in the Authorization header.
func NewClient(endpoint, token string, opts ...Option) *Client {
	o := options{
		requestsPerMin: defaultRequestsPerMin,
		timeout:        DefaultTimeout,
		transport:      http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{
		token:   token,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(o.requestsPerMin)), 1),
	}

	httpClient := &http.Client{
		Timeout: o.timeout,
		Transport: &authTransport{
			tokenFunc: func() string {
				c.mu.RLock()
				defer c.mu.RUnlock()
				return c.token
			},
			wrapped: o.transport,
		},
	}

	c.gql = graphql.NewClient(endpoint, httpClient)
	return c
}

// SetToken updates the auth token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Query executes a GraphQL query with rate limiting.
func (c *Client) Query(ctx context.Context, q interface{}, variables map[string]interface{}) error {
	return c.do(ctx, "query", func(ctx context.Context) error {
		return c.gql.Query(ctx, q, variables)
	})
}

// Mutate executes a GraphQL mutation with rate limiting.
func (c *Client) Mutate(ctx context.Context, m interface{}, variables map[string]interface{}) error {
	return c.do(ctx, "mutate", func(ctx context.Context) error {
		return c.gql.Mutate(ctx, m, variables)
	})
}

func (c *Client) do(ctx context.Context, op string, fn func(context.Context) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &Error{Op: op, Kind: KindNetwork, Err: fmt.Errorf("rate limit: %w", err)}
	}

	rec := &outcome{}
	err := fn(withOutcome(ctx, rec))
	if err == nil {
		return nil
	}

	kind := KindServer
	if rec.transportFailed() || ctx.Err() != nil {
		kind = KindNetwork
	}
	return &Error{Op: op, Kind: kind, Status: rec.statusCode(), Err: err}
}

type outcomeKey struct{}

// outcome is filled in by authTransport for a single request.
type outcome struct {
	mu           sync.Mutex
	transportErr error
	status       int
}

func withOutcome(ctx context.Context, rec *outcome) context.Context {
	return context.WithValue(ctx, outcomeKey{}, rec)
}

func outcomeFrom(ctx context.Context) *outcome {
	rec, _ := ctx.Value(outcomeKey{}).(*outcome)
	return rec
}

func (o *outcome) record(resp *http.Response, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transportErr = err
	if resp != nil {
		o.status = resp.StatusCode
	}
}

func (o *outcome) transportFailed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.transportErr != nil
}

func (o *outcome) statusCode() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}
