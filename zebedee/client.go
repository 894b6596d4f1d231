package zebedee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.zebedee.io"

	defaultTimeout = 30 * time.Second

	headerAPIKey    = "apikey"
	headerUserToken = "usertoken"
)

// Client represents a ZEBEDEE API client. It is immutable once built and
// safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	oauth      *OAuthConfig
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// New creates a new client. It performs no network I/O. A caller supplied
// HTTP client keeps its own timeout.
func New(opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		baseURL:    o.baseURL,
		apiKey:     o.apiKey,
		oauth:      o.oauth,
		httpClient: httpClient,
		userAgent:  o.userAgent,
		logger:     o.logger,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// OAuth returns a copy of the OAuth settings, or nil when none were given.
func (c *Client) OAuth() *OAuthConfig {
	if c.oauth == nil {
		return nil
	}
	cfg := *c.oauth
	return &cfg
}

// requestOption adjusts an outgoing request after the standard headers.
type requestOption func(*http.Request)

// withUserToken adds the user scoped token header of the OAuth endpoints.
func withUserToken(token string) requestOption {
	return func(req *http.Request) {
		req.Header.Set(headerUserToken, token)
	}
}

// withoutAPIKey strips the API key for public endpoints.
func withoutAPIKey() requestOption {
	return func(req *http.Request) {
		req.Header.Del(headerAPIKey)
	}
}

// attachStandardHeaders sets the content type and API key on req.
func (c *Client) attachStandardHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAPIKey, c.apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// doRequest performs an HTTP request with authentication. The response body
// is left for the caller to parse.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, payload any, opts ...requestOption) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return nil, &Error{Kind: KindValidation, Err: fmt.Errorf("failed to encode request body: %w", err)}
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, transportError(fmt.Errorf("failed to create request: %w", err))
	}

	c.attachStandardHeaders(req)
	for _, opt := range opts {
		opt(req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("method", method).
			Str("endpoint", endpoint).
			Msg("ZEBEDEE API request failed")
		return nil, transportError(fmt.Errorf("request failed: %w", err))
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("ZEBEDEE API request")

	return resp, nil
}

// call performs one enveloped request and returns its data payload.
func call[D any](ctx context.Context, c *Client, method, endpoint string, payload any, opts ...requestOption) (D, error) {
	resp, err := c.doRequest(ctx, method, endpoint, payload, opts...)
	if err != nil {
		var zero D
		return zero, err
	}
	return parseEnvelope[D](resp, c.logger)
}

// pathParam escapes a caller supplied identifier for interpolation into a
// path. Empty values are rejected before any request is built.
func pathParam(field, value string) (string, error) {
	if value == "" {
		return "", validationError([]Violation{{
			Field:   field,
			Rule:    RuleRequired,
			Message: field + " is required",
		}})
	}
	return url.PathEscape(value), nil
}
