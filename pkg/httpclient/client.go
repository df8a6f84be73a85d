package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ClientType represents the type of HTTP client configuration
type ClientType string

const (
	// BrowserClient uses browser-like headers. Some blog hosts answer bots
	// with 403/406, so this is the default profile.
	BrowserClient ClientType = "browser"

	// CloudflareClient uses simple headers (like curl) to avoid 403 (Forbidden) errors
	// Used for Cloudflare-protected sites that block browser-like User-Agents
	CloudflareClient ClientType = "cloudflare"
)

const (
	// DefaultTimeout bounds every single request
	DefaultTimeout = 15 * time.Second

	// DefaultMaxBodyBytes caps how much of a response body is read
	DefaultMaxBodyBytes int64 = 10 << 20

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var (
	// ErrUnexpectedStatus is wrapped by FetchBody for any non-2xx response
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrBodyTooLarge is returned by FetchBody when a body exceeds MaxBodyBytes
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrUnknownClientType is returned by ParseClientType
	ErrUnknownClientType = errors.New("unknown client type")
)

// ParseClientType maps a profile name ("browser", "cloudflare") to a ClientType
func ParseClientType(name string) (ClientType, error) {
	switch ct := ClientType(strings.ToLower(strings.TrimSpace(name))); ct {
	case BrowserClient, CloudflareClient:
		return ct, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownClientType, name)
	}
}

// Options tweaks a client. Zero values fall back to defaults.
type Options struct {
	Timeout      time.Duration
	UserAgent    string // Overrides the profile's User-Agent when set
	MaxBodyBytes int64
}

// HTTPClient wraps an http.Client with configuration
type HTTPClient struct {
	client       *http.Client
	clientType   ClientType
	userAgent    string
	maxBodyBytes int64
}

// NewClient creates a new HTTP client with the specified type and default options
func NewClient(clientType ClientType) *HTTPClient {
	return NewClientWithOptions(clientType, Options{})
}

// NewClientWithOptions creates a new HTTP client with the specified type and options
func NewClientWithOptions(clientType ClientType, opts Options) *HTTPClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Follow up to 10 redirects
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	return &HTTPClient{
		client:       client,
		clientType:   clientType,
		userAgent:    opts.UserAgent,
		maxBodyBytes: maxBody,
	}
}

// Do executes an HTTP request with the appropriate headers for the client type
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req)
	return c.client.Do(req)
}

// Get is a convenience method for GET requests
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// FetchBody performs a GET and returns the body of a 2xx response.
// Transport failures and any other status are returned as errors.
func (c *HTTPClient) FetchBody(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, fmt.Errorf("%w: more than %d bytes from %s", ErrBodyTooLarge, c.maxBodyBytes, url)
	}

	return body, nil
}

// setHeaders sets the appropriate headers based on client type
func (c *HTTPClient) setHeaders(req *http.Request) {
	switch c.clientType {
	case BrowserClient:
		req.Header.Set("User-Agent", browserUserAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7")

	case CloudflareClient:
		// Cloudflare allows simple tools like curl but blocks browser-like User-Agents
		req.Header.Set("User-Agent", "curl/8.7.1")

	default:
		// Default: use Go's default User-Agent
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}
