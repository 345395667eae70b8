package httpclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureTripper records the final request and returns a canned response.
type captureTripper struct {
	req *http.Request
}

func (c *captureTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	c.req = req
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	capture := &captureTripper{}
	rt := Wrap(capture, RequestID())

	req, err := http.NewRequest(http.MethodGet, "http://example.test/api/products", nil)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	require.NoError(t, err)

	id := capture.req.Header.Get("X-Request-ID")
	assert.NotEmpty(t, id)

	// Original request must not be mutated.
	assert.Empty(t, req.Header.Get("X-Request-ID"))
}

func TestRequestID_KeepsExisting(t *testing.T) {
	capture := &captureTripper{}
	rt := Wrap(capture, RequestID())

	req, err := http.NewRequest(http.MethodGet, "http://example.test/", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "fixed-id")

	_, err = rt.RoundTrip(req)
	require.NoError(t, err)

	assert.Equal(t, "fixed-id", capture.req.Header.Get("X-Request-ID"))
}

func TestUserAgent(t *testing.T) {
	capture := &captureTripper{}
	rt := Wrap(capture, UserAgent("blossom-cli/1.0"))

	req, err := http.NewRequest(http.MethodGet, "http://example.test/", nil)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	require.NoError(t, err)

	assert.Equal(t, "blossom-cli/1.0", capture.req.Header.Get("User-Agent"))
}

func TestWrap_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(req)
			})
		}
	}

	capture := &captureTripper{}
	rt := Wrap(capture, mark("outer"), mark("inner"))

	req, err := http.NewRequest(http.MethodGet, "http://example.test/", nil)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	require.NoError(t, err)

	assert.Equal(t, []string{"outer", "inner"}, order)
}
