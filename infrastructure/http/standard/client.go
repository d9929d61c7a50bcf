// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: Retries transport failures with exponential backoff, returns any status as-is

package standard

import (
	"context"
	"io"
	"net/http"
	"time"

	"kindle-press-api/core/interfaces"
)

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client     *http.Client
	userAgent  string
	maxRetries int
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout,
// User-Agent and retry budget for transport failures.
func NewStandardHTTPClient(timeout time.Duration, userAgent string, maxRetries int) *StandardHTTPClient {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent:  userAgent,
		maxRetries: maxRetries,
	}
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return c.GetWithHeaders(ctx, url, nil)
}

// GetWithHeaders performs an HTTP GET request with additional request headers.
// Transport failures (connection errors, timeouts) are retried with
// exponential backoff; a response with any status code, success or not, is
// returned on the first attempt that completes.
func (c *StandardHTTPClient) GetWithHeaders(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
				// Continue with retry
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		return &httpResponse{
			statusCode: resp.StatusCode,
			body:       resp.Body,
			headers:    resp.Header,
		}, nil
	}

	return nil, lastErr
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
