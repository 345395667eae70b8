// Package httpclient provides composable http.RoundTripper decorators for
// outbound API calls: request identifiers, user agent stamping, and request
// logging.
package httpclient

import (
	"net/http"
	"time"

	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Middleware decorates an http.RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// roundTripperFunc adapts a function to the http.RoundTripper interface.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Wrap applies middlewares to base so that the first middleware is the
// outermost decorator. A nil base defaults to http.DefaultTransport.
func Wrap(base http.RoundTripper, mw ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mw) - 1; i >= 0; i-- {
		base = mw[i](base)
	}
	return base
}

// RequestID returns a middleware that stamps every outgoing request with a
// unique X-Request-ID header. An ID already present on the request is kept.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("X-Request-ID") == "" {
				req = cloneRequest(req)
				req.Header.Set("X-Request-ID", uuid.New().String())
			}
			return next.RoundTrip(req)
		})
	}
}

// UserAgent returns a middleware that sets the User-Agent header on every
// outgoing request.
func UserAgent(ua string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			req = cloneRequest(req)
			req.Header.Set("User-Agent", ua)
			return next.RoundTrip(req)
		})
	}
}

// LogRequests returns a middleware that logs each outgoing request at debug
// level with its method, URL, status, and duration. The logger is taken from
// the request context via zctx.
func LogRequests() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			lg := zctx.From(req.Context())
			start := time.Now()

			resp, err := next.RoundTrip(req)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("url", req.URL.String()),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				lg.Debug("API request failed", append(fields, zap.Error(err))...)
				return nil, err
			}
			lg.Debug("API request", append(fields, zap.Int("status", resp.StatusCode))...)
			return resp, nil
		})
	}
}

// cloneRequest returns a shallow copy of req with deep-copied headers.
// RoundTrippers must not mutate the caller's request.
func cloneRequest(req *http.Request) *http.Request {
	clone := req.Clone(req.Context())
	return clone
}
