// Package verifier is the client for the debounce.io email verification API.
package verifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mrled/mailvet/internal/model"
)

// DefaultBaseURL is the production verification endpoint.
const DefaultBaseURL = "https://api.debounce.io/v1/"

// DefaultTimeout is the per-destination timeout for the verification
// endpoint. The service is observed to be slow, so this is deliberately
// longer than a typical outbound-call timeout and is configured on this
// client only, not process-wide.
const DefaultTimeout = 20 * time.Second

// TransportError reports that the remote call itself failed: network error,
// non-200 response, or unparsable body. It means "verification unavailable",
// never "email invalid".
type TransportError struct {
	msg string
	err error
}

func (e *TransportError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("verification transport failed: %s: %v", e.msg, e.err)
	}
	return fmt.Sprintf("verification transport failed: %s", e.msg)
}

func (e *TransportError) Unwrap() error { return e.err }

// Client calls the remote verification endpoint for a single address.
// It is stateless; all caching happens in the orchestrator.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint URL. Used by tests pointing the client
// at an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client, including its timeout policy.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a verification client with the extended per-destination
// timeout applied.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the wire shape of a successful response. The interesting
// payload is nested under "debounce", and the code arrives as a string.
type envelope struct {
	Debounce struct {
		Code       string `json:"code"`
		DidYouMean string `json:"did_you_mean"`
	} `json:"debounce"`
	Success string `json:"success"`
}

// Verify checks a single address against the remote service.
//
// The returned error, when non-nil, is always a *TransportError; the caller
// must treat it as "service unavailable" and must not cache anything.
func (c *Client) Verify(ctx context.Context, address, apiKey string) (model.Outcome, error) {
	reqURL := fmt.Sprintf("%s?email=%s&api=%s",
		c.baseURL, url.QueryEscape(address), url.QueryEscape(apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return model.Outcome{}, &TransportError{msg: "building request", err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Outcome{}, &TransportError{msg: "request failed", err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Outcome{}, &TransportError{
			msg: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Outcome{}, &TransportError{msg: "reading response body", err: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return model.Outcome{}, &TransportError{msg: "unparsable response body", err: err}
	}

	code, err := strconv.Atoi(env.Debounce.Code)
	if err != nil {
		return model.Outcome{}, &TransportError{
			msg: fmt.Sprintf("non-numeric verification code %q", env.Debounce.Code),
			err: err,
		}
	}

	return model.Outcome{
		Code:       code,
		DidYouMean: env.Debounce.DidYouMean,
	}, nil
}
