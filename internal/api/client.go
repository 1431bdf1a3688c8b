package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apierrors "github.com/diogo/wikichat/internal/errors"
	"github.com/diogo/wikichat/internal/models"
)

// maxBodySize caps how much of a response is read
const maxBodySize = 4 << 20

// HTTPDoer is the subset of tls_client.HttpClient the client needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
	CloseIdleConnections()
}

// WikiClientInterface is the lookup surface used by the chat and the CLI
type WikiClientInterface interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
	Page(ctx context.Context, title string) (*models.Page, error)
	Summary(ctx context.Context, title string, sentences int) (string, error)
	Language() string
	Close()
}

// WikiClient talks to the api.php endpoint of one Wikipedia language edition
type WikiClient struct {
	httpClient HTTPDoer
	language   string
	endpoint   string // overrides the language-derived endpoint when set
	timeout    time.Duration
	limiter    *rate.Limiter
	logger     *zap.Logger
	mu         sync.RWMutex
	closed     bool
}

// ClientOption is a function that configures the client
type ClientOption func(*WikiClient)

// WithLanguage sets the Wikipedia language edition (e.g. "ru", "en")
func WithLanguage(lang string) ClientOption {
	return func(c *WikiClient) {
		if lang != "" {
			c.language = lang
		}
	}
}

// WithEndpoint points the client at a fixed api.php URL
func WithEndpoint(endpoint string) ClientOption {
	return func(c *WikiClient) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient injects the HTTP transport
func WithHTTPClient(hc HTTPDoer) ClientOption {
	return func(c *WikiClient) {
		c.httpClient = hc
	}
}

// WithTimeout sets the transport timeout used when the client builds its own transport
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *WikiClient) {
		c.timeout = timeout
	}
}

// WithRateLimit paces outbound requests. A non-positive limit disables pacing.
func WithRateLimit(perSecond float64, burst int) ClientOption {
	return func(c *WikiClient) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *WikiClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new WikiClient
func NewClient(opts ...ClientOption) (*WikiClient, error) {
	client := &WikiClient{
		language: models.DefaultLanguage,
		timeout:  30 * time.Second,
		limiter:  rate.NewLimiter(rate.Limit(5), 2),
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		// Create TLS client with Chrome profile for browser emulation
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout / time.Second)),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Language returns the configured language edition
func (c *WikiClient) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.language
}

// Endpoint returns the api.php URL requests are sent to
func (c *WikiClient) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.endpoint != "" {
		return c.endpoint
	}
	return models.APIEndpoint(c.language)
}

// IsClosed returns whether the client is closed
func (c *WikiClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Close releases idle connections. Further calls fail with ErrClosed.
func (c *WikiClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// query performs one action=query request
func (c *WikiClient) query(ctx context.Context, operation string, params url.Values) (gjson.Result, error) {
	return c.call(ctx, operation, "query", params)
}

// call performs one GET against api.php and returns the parsed JSON document.
// MediaWiki reports failures inside a 200 response, so the "error" object is
// checked here for every call.
func (c *WikiClient) call(ctx context.Context, operation, action string, params url.Values) (gjson.Result, error) {
	if c.IsClosed() {
		return gjson.Result{}, apierrors.ErrClosed
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return gjson.Result{}, c.contextError(ctx, operation, err)
		}
	}

	endpoint := c.Endpoint()
	params.Set("action", action)
	params.Set("format", "json")
	params.Set("formatversion", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return gjson.Result{}, c.contextError(ctx, operation, err)
		}
		return gjson.Result{}, apierrors.NewNetworkErrorWithEndpoint(operation, endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return gjson.Result{}, apierrors.NewNetworkErrorWithEndpoint(operation, endpoint, err)
	}

	c.logger.Debug("mediawiki request",
		zap.String("operation", operation),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		errorBody := body
		// Limit error body to 4KB for diagnostics
		if len(errorBody) > 4096 {
			errorBody = errorBody[:4096]
		}
		return gjson.Result{}, apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, operation+" failed", string(errorBody))
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, apierrors.NewParseError("response is not valid JSON", "")
	}

	parsed := gjson.ParseBytes(body)
	if apiErr := parsed.Get(PathError); apiErr.Exists() {
		msg := fmt.Sprintf("%s: %s", parsed.Get(PathErrorCode).String(), parsed.Get(PathErrorInfo).String())
		return gjson.Result{}, apierrors.NewAPIError(0, endpoint, msg)
	}

	return parsed, nil
}

// contextError converts a cancelled or expired context into the error taxonomy
func (c *WikiClient) contextError(ctx context.Context, operation string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(operation)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
