// Package databricks implements the tenant-scoped request pipeline for the
// Databricks REST API. Credentials are resolved fresh from each inbound
// request's headers, and every outbound call funnels through a single Do
// function that normalizes errors into a small typed taxonomy.
package databricks

import (
	"context"
	"net/http"
	"strings"

	"github.com/tansive/databricks-mcp/internal/common/apperrors"
)

// Headers carrying per-request workspace credentials. Resolution reads these
// on every inbound call; nothing is stored process-wide, so one running
// instance serves any number of workspaces.
const (
	HeaderHost        = "X-Databricks-Host"
	HeaderToken       = "X-Databricks-Token"
	HeaderWarehouseID = "X-Databricks-Warehouse-ID"
)

// Credentials identifies a Databricks workspace for the duration of one
// inbound call. The token is never logged.
type Credentials struct {
	Host        string // workspace base URL, no trailing slash
	Token       string // personal access token
	WarehouseID string // optional default SQL warehouse
}

// CredentialsFromHeaders extracts credentials from inbound request headers.
// Absent headers become empty strings; extraction never fails. The host is
// normalized by stripping a trailing slash.
func CredentialsFromHeaders(h http.Header) Credentials {
	return Credentials{
		Host:        strings.TrimSuffix(strings.TrimSpace(h.Get(HeaderHost)), "/"),
		Token:       strings.TrimSpace(h.Get(HeaderToken)),
		WarehouseID: strings.TrimSpace(h.Get(HeaderWarehouseID)),
	}
}

// Validate fails when a required credential is absent. Called once per
// inbound call before any remote request is attempted.
func (c Credentials) Validate() apperrors.Error {
	if c.Host == "" {
		return ErrMissingHost
	}
	if c.Token == "" {
		return ErrMissingToken
	}
	return nil
}

type credentialsContextKey struct{}

// ContextWithCredentials stores call-scoped credentials in the context.
func ContextWithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credentialsContextKey{}, creds)
}

// CredentialsFromContext retrieves the call's credentials from the context.
func CredentialsFromContext(ctx context.Context) (Credentials, bool) {
	creds, ok := ctx.Value(credentialsContextKey{}).(Credentials)
	return creds, ok
}
