package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultAPIBase is the HTTPS endpoint serving shader metadata.
	DefaultAPIBase = "https://www.shadertoy.com"
	// DefaultMediaBase serves static media assets. The live service ships
	// assets over plain HTTP; the scheme difference is intentional.
	DefaultMediaBase = "http://shadertoy.com"

	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 30 * time.Second

	// The raw endpoint rejects clients it does not recognize, so every
	// request carries a desktop browser identity.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
)

// headerTransport decorates every outgoing request with the browser-like
// headers the raw endpoint requires.
type headerTransport struct {
	referer   string
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", t.referer)
	return t.transport.RoundTrip(req)
}

// Client talks to the Shadertoy web service: one POST for a shader's full
// record, one GET per referenced media asset.
type Client struct {
	httpClient *http.Client
	apiBase    string
	mediaBase  string
}

// ClientOption adjusts a Client at construction time.
type ClientOption func(*Client)

// WithBaseURLs overrides the metadata and media endpoints. Empty strings
// leave the defaults in place.
func WithBaseURLs(apiBase, mediaBase string) ClientOption {
	return func(c *Client) {
		if apiBase != "" {
			c.apiBase = strings.TrimSuffix(apiBase, "/")
		}
		if mediaBase != "" {
			c.mediaBase = strings.TrimSuffix(mediaBase, "/")
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithTransport swaps the underlying round tripper, primarily so tests can
// count and stub network calls.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.httpClient.Transport.(*headerTransport).transport = rt
	}
}

// NewClient builds a Client with the default endpoints and timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &headerTransport{
				transport: http.DefaultTransport,
			},
		},
		apiBase:   DefaultAPIBase,
		mediaBase: DefaultMediaBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient.Transport.(*headerTransport).referer = c.apiBase + "/browse"
	return c
}

// shaderQuery is the JSON payload embedded in the form body of a metadata
// request: {"shaders":["<id>"]}.
type shaderQuery struct {
	Shaders []string `json:"shaders"`
}

// FetchRecord retrieves the full record for one shader ID. Exactly one
// request is issued; there are no retries. Any failure here is fatal to
// the run: the error wraps ErrTransport, ErrEmptyResponse or
// ErrMalformedResponse accordingly.
func (c *Client) FetchRecord(ctx context.Context, shaderID string) (ShaderRecord, error) {
	payload, err := json.Marshal(shaderQuery{Shaders: []string{shaderID}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode shader query: %w", err)
	}
	form := url.Values{}
	form.Set("s", string(payload))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/shadertoy", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: bad response status %s", ErrTransport, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if len(body) == 0 {
		return nil, ErrEmptyResponse
	}

	var record ShaderRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(record) != 1 {
		return nil, fmt.Errorf("%w: expected 1 shader entry, got %d", ErrMalformedResponse, len(record))
	}
	return record, nil
}

// FetchAsset downloads one media file by its server-relative path and
// returns the raw bytes. Callers treat failures as recoverable.
func (c *Client) FetchAsset(ctx context.Context, serverPath string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.mediaBase+serverPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: bad response status %s for %s", ErrTransport, resp.Status, serverPath)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return data, nil
}
