package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"resty.dev/v3"
)

// Sentinel errors returned by Exchange. Callers classify with errors.Is.
var (
	// ErrInvalidCredentials indicates the identity endpoint rejected the
	// sign-in attempt (bad email/password, disabled account, etc.).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMalformedResponse indicates the identity endpoint answered with
	// neither an error nor a success marker.
	ErrMalformedResponse = errors.New("malformed identity response")
)

// Session is the authenticated identity produced by a successful
// credential exchange. It is valid for the lifetime of one sign-in.
type Session struct {
	// IDToken is the short-lived access token issued by the identity
	// endpoint. It is a bearer credential and must not be logged.
	IDToken string

	// UserID is the provider-assigned local id of the signed-in user.
	UserID string
}

// signInResponse mirrors the identity endpoint's sign-in reply. A success
// carries "kind"; a rejection carries "error".
type signInResponse struct {
	Kind    string `json:"kind"`
	IDToken string `json:"idToken"`
	LocalID string `json:"localId"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client exchanges user credentials for a Session against the identity
// REST endpoint.
type Client struct {
	apiKey string
	client *resty.Client
}

// NewClient creates an identity client. apiKey is the database web API
// key; baseURL is the sign-in endpoint (configurable for testing).
func NewClient(apiKey, baseURL string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Client{
		apiKey: apiKey,
		client: client,
	}
}

// Exchange signs the user in with email and password. Email and password
// are passed through unvalidated; the server is authoritative. The
// credentials are not retained after the call returns.
func (c *Client) Exchange(ctx context.Context, email, password string) (Session, error) {
	if c.apiKey == "" {
		return Session{}, fmt.Errorf("identity exchange requires a non-empty API key")
	}

	var result signInResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(map[string]any{
			"email":             email,
			"password":          password,
			"returnSecureToken": true,
		}).
		SetResult(&result).
		SetError(&result).
		Post("")

	if err != nil {
		return Session{}, fmt.Errorf("identity exchange failed: %w", err)
	}

	switch {
	case result.Error != nil:
		// The body is diagnostic only; the UI decides what the user sees.
		slog.Debug("identity endpoint rejected sign-in",
			"status_code", resp.StatusCode(),
			"message", result.Error.Message)
		return Session{}, fmt.Errorf("%w: %s", ErrInvalidCredentials, result.Error.Message)

	case result.Kind != "":
		return Session{
			IDToken: result.IDToken,
			UserID:  result.LocalID,
		}, nil

	default:
		// Neither "error" nor "kind": never leave the caller waiting on
		// an unclassified reply.
		slog.Debug("identity endpoint returned unexpected shape",
			"status_code", resp.StatusCode())
		return Session{}, ErrMalformedResponse
	}
}
