// Package fetch downloads the reference page, with an on-disk cache and
// retries for transient failures.
package fetch

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fullpipe/twa-sdk-types/pkg/buildinfo"
	"github.com/fullpipe/twa-sdk-types/pkg/errors"
	"github.com/fullpipe/twa-sdk-types/pkg/httputil"
	"github.com/fullpipe/twa-sdk-types/pkg/observability"
)

// DefaultURL is the Telegram Mini Apps reference page.
const DefaultURL = "https://core.telegram.org/bots/webapps"

const (
	httpTimeout   = 30 * time.Second
	retryAttempts = 3
	retryDelay    = time.Second

	// defaultMaxBody caps the page size; the real page is a few hundred KiB.
	defaultMaxBody = 16 << 20

	cacheKeyType = "page"
)

var (
	// ErrNotFound is returned for a 404 response.
	ErrNotFound = stderrors.New("page not found")

	// ErrNetwork is returned for transport failures and unexpected statuses.
	ErrNetwork = stderrors.New("network error")
)

// Page is a downloaded document.
type Page struct {
	URL       string    `json:"url"`
	Body      string    `json:"body"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Client fetches pages. The zero value is not usable; call [NewClient].
type Client struct {
	http     *http.Client
	cache    *httputil.Cache
	headers  map[string]string
	attempts int
	delay    time.Duration
	maxBody  int64
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRetry sets the number of attempts and the initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) { c.attempts, c.delay = attempts, delay }
}

// WithMaxBody sets the largest accepted page size in bytes.
func WithMaxBody(n int64) Option {
	return func(c *Client) { c.maxBody = n }
}

// WithHeader adds a request header.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// NewClient returns a Client. A nil cache disables caching.
func NewClient(cache *httputil.Cache, opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: httpTimeout},
		headers:  map[string]string{"User-Agent": buildinfo.UserAgent()},
		attempts: retryAttempts,
		delay:    retryDelay,
		maxBody:  defaultMaxBody,
	}
	if cache != nil {
		c.cache = cache.Namespace(cacheKeyType + ":")
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Page returns the page at rawURL, from the cache when a fresh entry exists
// and refresh is false. A successful download is written back to the cache.
func (c *Client) Page(ctx context.Context, rawURL string, refresh bool) (*Page, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	if c.cache != nil && !refresh {
		var p Page
		if ok, _ := c.cache.Get(rawURL, &p); ok {
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			return &p, nil
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	}

	var body string
	err := httputil.Retry(ctx, c.attempts, c.delay, func() error {
		var err error
		body, err = c.GetText(ctx, rawURL)
		return err
	})
	switch {
	case stderrors.Is(err, ErrNotFound):
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "GET %s", rawURL)
	case stderrors.Is(err, ErrNetwork):
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", rawURL)
	case err != nil:
		return nil, err
	}

	p := &Page{URL: rawURL, Body: body, FetchedAt: time.Now().UTC()}
	if c.cache != nil {
		if err := c.cache.Set(rawURL, p); err == nil {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(body))
		}
	}
	return p, nil
}

// GetText performs one GET and returns the body. Transport errors and 5xx
// responses are wrapped in [httputil.RetryableError]. A body over the size
// limit is an error, never a truncated page.
func (c *Client) GetText(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	host, path := hostPath(rawURL)
	observability.HTTP().OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return "", err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return "", &httputil.RetryableError{Err: fmt.Errorf("%w: read body: %v", ErrNetwork, err)}
	}
	if int64(len(data)) > c.maxBody {
		return "", fmt.Errorf("%w: page larger than %d bytes", ErrNetwork, c.maxBody)
	}
	return string(data), nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests || code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

func hostPath(rawURL string) (string, string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", rawURL
	}
	return u.Host, u.Path
}
