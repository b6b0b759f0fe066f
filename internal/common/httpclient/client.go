// internal/common/httpclient/client.go
package httpclient

import (
	"context"
	"net/http"
)

// Client is a thin wrapper around *http.Client that is safe to share across
// concurrent jobs. Per-call deadlines come from the request context, never
// from mutating the shared client.
type Client struct {
	httpClient *http.Client
}

func New() *Client {
	return &Client{
		httpClient: &http.Client{},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.httpClient.Do(req)
}
