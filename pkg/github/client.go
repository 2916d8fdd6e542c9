// Package github provides a small client facade over the GitHub API with
// REST lookups and batched GraphQL queries.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/teamtools/github-client/pkg/logging"
)

const (
	defaultAPIBase = "https://api.github.com/"
	tokenVar       = "GITHUB_TOKEN"

	defaultTimeout = 30 * time.Second
)

// Prometheus metrics for GitHub client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "github_requests_total",
		Help: "Total GitHub API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "github_request_duration_seconds",
		Help:    "GitHub API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "github_errors_total",
		Help: "Total GitHub client errors by kind",
	}, []string{"kind"})
)

// Error kinds reported via the github_errors_total metric.
const (
	errKindConfig    = "config"
	errKindEncode    = "encode"
	errKindTransport = "transport"
	errKindGraphQL   = "graphql"
	errKindProtocol  = "protocol"
)

// User is a user object decoded from the GitHub REST API. Name and Email
// may be null or absent in the response; both decode to the empty string.
type User struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Client is a GitHub API client. Its fields are read-only after
// construction, so a single Client is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// Token is the API token. May be empty; authenticated operations then
	// fail with ErrMissingToken when invoked.
	Token string

	// BaseURL is the API base address. Defaults to the public GitHub API.
	BaseURL string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration for the given token.
func DefaultConfig(token string) Config {
	return Config{
		Token:   token,
		BaseURL: defaultAPIBase,
		Timeout: defaultTimeout,
	}
}

// New creates a new GitHub client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAPIBase
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	logger := logging.NewLogger("github-client")

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		logger:  logger,
	}, nil
}

// NewFromEnv creates a client configured from the GITHUB_TOKEN environment
// variable. The variable is read exactly once, here; its absence is not an
// error until an authenticated operation is invoked.
func NewFromEnv() (*Client, error) {
	return New(DefaultConfig(os.Getenv(tokenVar)))
}

// RequireAuth reports whether the client holds a token. Operations that
// need authentication call this before touching the network; callers may
// use it to surface the configuration error early instead of lazily.
func (c *Client) RequireAuth() error {
	if c.token == "" {
		errorsTotal.WithLabelValues(errKindConfig).Inc()
		return ErrMissingToken
	}
	return nil
}

// prepare builds an unsent request against either an absolute https URL
// (used verbatim) or a path relative to the API base. A configured token is
// attached to every request, authenticated or not.
func (c *Client) prepare(ctx context.Context, requireAuth bool, method, urlOrPath string, body io.Reader) (*http.Request, error) {
	if requireAuth {
		if err := c.RequireAuth(); err != nil {
			return nil, err
		}
	}

	target := urlOrPath
	if !strings.HasPrefix(urlOrPath, "https://") {
		target = c.baseURL + urlOrPath
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.token != "" {
		value := "token " + c.token
		if !validHeaderValue(value) {
			errorsTotal.WithLabelValues(errKindEncode).Inc()
			return nil, ErrInvalidToken
		}
		req.Header.Set("Authorization", value)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// do executes a prepared request and requires a 2xx status. The endpoint
// label is the metric dimension, not the concrete URL.
func (c *Client) do(req *http.Request, endpoint string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		errorsTotal.WithLabelValues(errKindTransport).Inc()
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, fmt.Errorf("request failed: %w", err)
	}

	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Msg("GitHub request error")
		errorsTotal.WithLabelValues(errKindTransport).Inc()
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        req.URL.String(),
		}
	}

	return resp, nil
}

// User fetches a single user by login via the REST API. The call is
// unauthenticated, though a configured token is still attached.
func (c *Client) User(ctx context.Context, login string) (*User, error) {
	req, err := c.prepare(ctx, false, http.MethodGet, "users/"+url.PathEscape(login), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, "/users/{login}")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		errorsTotal.WithLabelValues(errKindProtocol).Inc()
		return nil, fmt.Errorf("decode user response: %w", err)
	}

	c.logger.Debug().
		Str("login", user.Login).
		Int64("id", user.ID).
		Msg("Fetched user")

	return &user, nil
}

// validHeaderValue reports whether s can be carried as an HTTP header
// value (visible ASCII plus horizontal tab, per RFC 7230).
func validHeaderValue(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b != '\t' && (b < 0x20 || b == 0x7f) {
			return false
		}
	}
	return true
}
