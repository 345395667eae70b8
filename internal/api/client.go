// Package api is the typed client for the storefront REST API. Every
// endpoint has explicit request and response types; response shapes are
// validated at this boundary rather than trusted implicitly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/xenking/blossom-storefront/pkg/httpclient"
)

// maxErrorBody caps how much of an error response body is read when
// extracting the server-provided message.
const maxErrorBody = 1 << 20

// TokenFunc supplies the current bearer token, or an empty string when no
// session is active.
type TokenFunc func() string

// Error is a failed API call: a non-2xx status with the server-provided
// message, or a generic fallback when the body carried none.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// Config configures a Client.
type Config struct {
	// BaseURL is the API server origin, e.g. http://localhost:5000.
	BaseURL string
	// Token supplies the bearer token for authenticated calls. May be nil
	// when the client is only used for public endpoints.
	Token TokenFunc
	// Timeout bounds each request. Zero means 30 seconds.
	Timeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

// Client calls the storefront REST API.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
}

// NewClient creates a Client whose transport stamps request IDs and the user
// agent, records OpenTelemetry spans, and logs requests at debug level.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "blossom-storefront"
	}
	token := cfg.Token
	if token == nil {
		token = func() string { return "" }
	}

	transport := httpclient.Wrap(
		otelhttp.NewTransport(http.DefaultTransport),
		httpclient.RequestID(),
		httpclient.UserAgent(ua),
		httpclient.LogRequests(),
	)

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Transport: transport, Timeout: timeout},
		token:   token,
	}
}

// call options for a single request.
type callOpts struct {
	authed bool
}

// doJSON performs one JSON round-trip. body and out may be nil. Non-2xx
// responses are returned as *Error carrying the server message.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, opts callOpts) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.authed {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, path)
	}
	return nil
}

// decodeError extracts the server's {"message": ...} payload, falling back
// to the HTTP status text.
func decodeError(resp *http.Response) error {
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	}
	return apiErr
}
