// Package feed resolves a user's scoped data endpoint and fetches raw
// readings payloads from it. Payload classification lives in the series
// package; feed only distinguishes transport-level failures.
package feed

import (
	"context"
	"errors"
	"net"
	"time"

	"resty.dev/v3"
)

const defaultTimeout = 15 * time.Second

// Client issues reads against resolved endpoints.
type Client struct {
	client *resty.Client
}

// NewClient creates a data-endpoint client. Timeouts are the only
// transport policy applied here; retry decisions belong to the caller.
func NewClient() *Client {
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(defaultTimeout)

	return &Client{client: client}
}

// Fetch performs a GET against the endpoint and returns the raw response
// body. The body is returned regardless of content whenever the server
// produced one the parser can classify; only genuine transport failures
// and bodyless error statuses surface as a *feed.Error.
func (c *Client) Fetch(ctx context.Context, endpoint Endpoint) ([]byte, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(string(endpoint))

	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, NewTimeoutError(err)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, NewTimeoutError(err)
		}
		return nil, NewNetworkError(err)
	}

	body := resp.Bytes()

	if resp.IsSuccess() {
		return body, nil
	}

	// The database reports authorization problems as 4xx with an "error"
	// body. Hand those to the parser instead of masking them.
	if resp.StatusCode() < 500 && resp.StatusCode() != 429 && len(body) > 0 {
		return body, nil
	}

	return nil, ClassifyHTTPError(resp.StatusCode())
}
