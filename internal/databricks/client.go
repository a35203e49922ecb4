package databricks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// defaultRetryAfterSeconds is used when a 429 response carries no parseable
// Retry-After header.
const defaultRetryAfterSeconds = 60

// Descriptor describes one outbound request. It is constructed by an
// operation façade and consumed exactly once by Do.
type Descriptor struct {
	Method string // GET, POST, PUT, PATCH, DELETE
	Path   string // endpoint path, leading slash, may carry a query string
	Body   any    // JSON-encoded when non-nil, omitted entirely otherwise
}

// Caller is the interface façades call through, so tests can substitute a
// stub transport for the real client.
type Caller interface {
	Do(ctx context.Context, d Descriptor) (json.RawMessage, error)
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)
	Patch(ctx context.Context, path string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, path string) (json.RawMessage, error)
}

var _ Caller = (*Client)(nil)

// Client makes requests against one workspace on behalf of one inbound call.
// It holds no state beyond the call's credentials; construct a fresh one per
// call and discard it when the call completes.
type Client struct {
	creds      Credentials
	httpClient *http.Client
}

// ClientOptions contains options for constructing a client.
type ClientOptions struct {
	HTTPClient *http.Client // underlying transport; defaults to http.DefaultClient semantics
}

// NewClient creates a client for the given credentials. The host is
// normalized by stripping a trailing slash in case the credentials were
// constructed directly rather than resolved from headers.
func NewClient(creds Credentials, opts ...ClientOptions) *Client {
	creds.Host = strings.TrimSuffix(creds.Host, "/")
	httpClient := &http.Client{}
	if len(opts) > 0 && opts[0].HTTPClient != nil {
		httpClient = opts[0].HTTPClient
	}
	return &Client{
		creds:      creds,
		httpClient: httpClient,
	}
}

// Do issues one request and normalizes the outcome. Success returns the raw
// JSON body (nil for 204 or an empty body). Failures are one of
// *AuthenticationError, *RateLimitError, *APIError, or *DecodeError; no raw
// transport error escapes this boundary.
func (c *Client) Do(ctx context.Context, d Descriptor) (json.RawMessage, error) {
	if c.creds.Token == "" {
		return nil, &AuthenticationError{}
	}

	var bodyReader io.Reader
	if d.Body != nil {
		encoded, err := json.Marshal(d.Body)
		if err != nil {
			return nil, &APIError{Message: "failed to encode request body: " + err.Error()}
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, d.Method, c.creds.Host+d.Path, bodyReader)
	if err != nil {
		return nil, &APIError{Message: "failed to build request: " + err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: "request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RateLimitError{RetryAfterSeconds: retryAfterSeconds(resp)}

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// Never forward the remote auth error body; it can hint at
		// credential internals.
		return nil, &AuthenticationError{}

	case resp.StatusCode == http.StatusNoContent:
		return nil, nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &APIError{Message: "failed to read response body: " + err.Error()}
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return nil, nil
		}
		var probe any
		if err := json.Unmarshal(body, &probe); err != nil {
			return nil, &DecodeError{Err: err}
		}
		return json.RawMessage(body), nil

	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, apiErrorFromBody(resp.StatusCode, body)
	}
}

// retryAfterSeconds reads the Retry-After header as an integer, falling back
// to the default when absent or unparseable.
func retryAfterSeconds(resp *http.Response) int {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			return secs
		}
	}
	return defaultRetryAfterSeconds
}

// apiErrorFromBody extracts the platform's message and error code from an
// error response body, falling back to a generic message when the body is
// not JSON or carries neither key.
func apiErrorFromBody(status int, body []byte) *APIError {
	apiErr := &APIError{
		HTTPStatus: status,
		Message:    fmt.Sprintf("API error: %d", status),
	}
	if !json.Valid(body) {
		return apiErr
	}
	if msg := gjson.GetBytes(body, "message").String(); msg != "" {
		apiErr.Message = msg
	} else if msg := gjson.GetBytes(body, "error").String(); msg != "" {
		apiErr.Message = msg
	}
	apiErr.Code = gjson.GetBytes(body, "error_code").String()
	return apiErr
}

// Get issues a GET request for the given path.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, Descriptor{Method: http.MethodGet, Path: path})
}

// Post issues a POST request with the given body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Descriptor{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request with the given body.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Descriptor{Method: http.MethodPut, Path: path, Body: body})
}

// Patch issues a PATCH request with the given body.
func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Descriptor{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete issues a DELETE request for the given path.
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, Descriptor{Method: http.MethodDelete, Path: path})
}
