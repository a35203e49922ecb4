package databricks

import (
	"fmt"
	"net/http"

	"github.com/tansive/databricks-mcp/internal/common/apperrors"
)

// Package-level error variables for credential resolution. Both are raised
// before any network activity and name the header the caller must supply.
var (
	// ErrDatabricksClient is the base error for the package.
	ErrDatabricksClient apperrors.Error = apperrors.New("databricks client error").SetStatusCode(http.StatusInternalServerError)

	// ErrMissingHost is returned when the workspace host header is absent.
	ErrMissingHost apperrors.Error = ErrDatabricksClient.New(
		"missing Databricks host: set the " + HeaderHost + " header to the workspace base URL (e.g. https://dbc-xxxx.cloud.databricks.com)").SetStatusCode(http.StatusBadRequest)

	// ErrMissingToken is returned when the access token header is absent.
	ErrMissingToken apperrors.Error = ErrDatabricksClient.New(
		"missing Databricks token: set the " + HeaderToken + " header to a personal access token for the workspace").SetStatusCode(http.StatusBadRequest)
)

// AuthenticationError indicates the workspace rejected the caller's token, or
// that no token was supplied. The message is deliberately generic; the remote
// response body is never included.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "authentication failed: verify that the Databricks token is valid and has not expired"
}

// RateLimitError indicates the workspace returned 429. RetryAfterSeconds is a
// hint only; nothing in this package retries.
type RateLimitError struct {
	RetryAfterSeconds int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited by Databricks: retry after %d seconds", e.RetryAfterSeconds)
}

// APIError carries any other non-2xx outcome, including transport failures
// (HTTPStatus 0). Code is the platform error code when the response body
// carried one.
type APIError struct {
	HTTPStatus int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

// DecodeError indicates a 2xx response carried a body that is not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "failed to decode Databricks response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
