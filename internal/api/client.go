// Package api talks to the tuition-center backend over REST. All business
// state lives behind that API; this package only moves it across the wire
// and classifies failures.
package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Request represents an HTTP request to the backend
type Request struct {
	Method string
	URL    string
	Body   []byte
}

// Response represents a successful HTTP response
type Response struct {
	StatusCode int
	Body       []byte
}

// Doer makes HTTP requests. Implemented by defaultClient; tests substitute
// their own.
type Doer interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

type defaultClient struct {
	client *retryablehttp.Client
}

// NewClient creates the backend HTTP client. retryMax is 0 in the default
// configuration so failed submissions stay user-initiated; a timeout of 0
// disables the client-side deadline.
func NewClient(timeout time.Duration, retryMax int) Doer {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.Logger = nil
	rc.HTTPClient.Timeout = timeout

	return &defaultClient{client: rc}
}

// Send performs the request. Transport failures come back as
// KindNetworkUnavailable; non-2xx statuses as KindBackendRejected carrying
// the raw response payload.
func (c *defaultClient) Send(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, req.Body)
	if err != nil {
		return nil, NewValidation("invalid request", err)
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, NewNetworkUnavailable(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkUnavailable(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewBackendRejected(resp.StatusCode, respBody, http.StatusText(resp.StatusCode))
	}

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}
