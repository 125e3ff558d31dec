package discogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/time/rate"

	"platter/internal/logging"
)

const (
	defaultUserAgent         = "platter/dev"
	defaultRequestsPerMinute = 60
	defaultRetryAttempts     = 3
	defaultRetryDelay        = 500 * time.Millisecond
	searchPageSize           = 100
	maxErrorBody             = 512
)

// Searcher defines the Discogs operations used by catalogue resolution.
type Searcher interface {
	SearchCatalogueNumber(ctx context.Context, catno string) (*SearchResponse, error)
	GetRelease(ctx context.Context, id int64) (*Release, error)
	GetMaster(ctx context.Context, id int64) (*Release, error)
}

// Client provides access to the Discogs database API.
type Client struct {
	token      string
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	attempts   uint
	retryDelay time.Duration
	cache      *searchCache
	logger     *slog.Logger
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithUserAgent sets the User-Agent header Discogs requires on every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if ua := strings.TrimSpace(userAgent); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRateLimit paces requests to perMinute. Zero or negative disables pacing.
func WithRateLimit(perMinute int) Option {
	return func(c *Client) {
		c.limiter = newLimiter(perMinute)
	}
}

// WithRetry configures the total attempts per request and the base backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		if attempts < 1 {
			attempts = 1
		}
		if delay < 0 {
			delay = 0
		}
		c.attempts = uint(attempts)
		c.retryDelay = delay
	}
}

// WithSearchCacheTTL keeps search responses for ttl. Zero disables caching.
func WithSearchCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newSearchCache(ttl)
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Discogs client.
func New(token, baseURL string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("discogs token required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("discogs base url required")
	}
	client := &Client{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    newLimiter(defaultRequestsPerMinute),
		attempts:   defaultRetryAttempts,
		retryDelay: defaultRetryDelay,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "discogs")
	return client, nil
}

func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// StatusError reports a non-2xx Discogs response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("discogs %s returned %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("discogs %s returned %d", e.Endpoint, e.StatusCode)
}

// Retryable reports whether the status is worth another attempt.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// SearchCatalogueNumber searches the database for releases and masters
// carrying the supplied catalogue number.
func (c *Client) SearchCatalogueNumber(ctx context.Context, catno string) (*SearchResponse, error) {
	catno = strings.TrimSpace(catno)
	if catno == "" {
		return nil, errors.New("catalogue number must not be empty")
	}
	if resp, ok := c.cache.get(catno); ok {
		c.logger.Debug("search cache hit", logging.CatalogueNumber(catno))
		return resp, nil
	}

	params := url.Values{}
	params.Set("catno", catno)
	params.Set("per_page", strconv.Itoa(searchPageSize))

	var envelope struct {
		Pagination Pagination      `json:"pagination"`
		Results    *[]SearchResult `json:"results"`
	}
	if err := c.get(ctx, "search", "/database/search", params, &envelope); err != nil {
		return nil, err
	}
	if envelope.Results == nil {
		return nil, errors.New("decode discogs search response: missing results")
	}
	resp := &SearchResponse{Pagination: envelope.Pagination, Results: *envelope.Results}
	// Only the first page is read; disambiguation then sees a partial hit set.
	if resp.Pagination.Pages > 1 {
		logging.WarnEvent(c.logger, "search results truncated to first page", "discogs_search_truncated",
			logging.CatalogueNumber(catno),
			logging.Int("pages", resp.Pagination.Pages),
			logging.Int("items", resp.Pagination.Items),
			logging.Int("read", len(resp.Results)),
			logging.String(logging.FieldErrorHint, "add hint words or a more specific catalogue number"),
			logging.String(logging.FieldImpact, "title check runs on the first page of hits only"),
		)
	}
	c.cache.put(catno, resp)
	return resp, nil
}

// GetRelease fetches the detail payload of a release.
func (c *Client) GetRelease(ctx context.Context, id int64) (*Release, error) {
	return c.getDetail(ctx, "release", "/releases/", id)
}

// GetMaster fetches the detail payload of a master release.
func (c *Client) GetMaster(ctx context.Context, id int64) (*Release, error) {
	return c.getDetail(ctx, "master", "/masters/", id)
}

func (c *Client) getDetail(ctx context.Context, endpoint, path string, id int64) (*Release, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid %s id %d", endpoint, id)
	}
	var release Release
	if err := c.get(ctx, endpoint, path+strconv.FormatInt(id, 10), nil, &release); err != nil {
		return nil, err
	}
	return &release, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	target, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse discogs url: %w", err)
	}
	if len(params) > 0 {
		target.RawQuery = params.Encode()
	}

	var body []byte
	err = retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(fmt.Errorf("rate limiter: %w", err))
			}
			payload, doErr := c.do(ctx, endpoint, target.String())
			if doErr != nil {
				return doErr
			}
			body = payload
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying discogs request",
				logging.String("endpoint", endpoint),
				logging.Int("attempt", int(n)+1),
				logging.Error(err),
			)
		}),
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode discogs %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, endpoint, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Authorization", "Discogs token="+c.token)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("discogs request completed",
		logging.String("endpoint", endpoint),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: errorMessage(snippet)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read discogs %s response (latency=%v): %w", endpoint, latency, err)
	}
	return body, nil
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return true
}

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}
