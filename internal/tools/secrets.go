package tools

import (
	"context"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tansive/databricks-mcp/internal/databricks"
)

func init() {
	register("secrets", mcp.NewTool("list_secret_scopes",
		mcp.WithDescription("List secret scopes in the workspace. Secret values are never readable through this gateway."),
	), listSecretScopes)

	register("secrets", mcp.NewTool("list_secrets",
		mcp.WithDescription("List the secret keys in a scope. Only key metadata is returned, never values."),
		mcp.WithString("scope", mcp.Required(), mcp.Description("Secret scope to list")),
	), listSecrets)
}

func listSecretScopes(ctx context.Context, c databricks.Caller, _ map[string]any) (any, error) {
	raw, err := c.Get(ctx, "/api/2.0/secrets/scopes/list")
	if err != nil {
		return nil, err
	}
	return unwrapArray(raw, "scopes")
}

type listSecretsArgs struct {
	Scope string `json:"scope"`
}

func listSecrets(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in listSecretsArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Scope == "" {
		return nil, ErrInvalidArguments.Msg("scope is required")
	}
	raw, err := c.Get(ctx, "/api/2.0/secrets/list?scope="+url.QueryEscape(in.Scope))
	if err != nil {
		return nil, err
	}
	return unwrapArray(raw, "secrets")
}
