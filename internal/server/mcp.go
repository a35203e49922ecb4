package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tansive/databricks-mcp/internal/common/apperrors"
	"github.com/tansive/databricks-mcp/internal/config"
	"github.com/tansive/databricks-mcp/internal/databricks"
	"github.com/tansive/databricks-mcp/internal/tools"
)

// Package-level error variables for MCP dispatch.
var (
	// ErrMCPServer is the base error for the package.
	ErrMCPServer apperrors.Error = apperrors.New("mcp server error").SetStatusCode(http.StatusInternalServerError)

	// ErrSchemaCompile is returned when a tool's declared input schema
	// cannot be compiled at mount time.
	ErrSchemaCompile apperrors.Error = ErrMCPServer.New("failed to compile tool input schema")
)

// newMCPServer builds the MCP server with every registered tool mounted
// behind a dispatch wrapper. Input schemas are compiled once here.
func newMCPServer() (*mcpserver.MCPServer, apperrors.Error) {
	srv := mcpserver.NewMCPServer(
		"databricks-mcp-gateway",
		Version,
		mcpserver.WithToolCapabilities(true),
	)

	for _, tool := range tools.Registry() {
		schema, err := compileInputSchema(tool.Def)
		if err != nil {
			return nil, ErrSchemaCompile.MsgErr(fmt.Sprintf("tool %s", tool.Def.Name), err)
		}
		srv.AddTool(tool.Def, dispatchHandler(tool, schema))
	}
	return srv, nil
}

// compileInputSchema compiles the tool's declared input shape so caller
// arguments can be validated before the handler runs.
func compileInputSchema(def mcp.Tool) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(def.InputSchema)
	if err != nil {
		return nil, err
	}
	return jsonschema.CompileString(def.Name+".schema.json", string(raw))
}

// dispatchHandler wraps a registry tool for the MCP server. Per call it
// validates the inbound credentials, validates arguments against the tool's
// schema, builds a fresh workspace client, and converts the handler's result
// or error into a tool result. Errors become IsError results, never protocol
// failures, so one bad call cannot take down the session.
func dispatchHandler(tool tools.Tool, schema *jsonschema.Schema) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		creds, _ := databricks.CredentialsFromContext(ctx)
		if err := creds.Validate(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		args := req.GetArguments()
		if args == nil {
			args = map[string]any{}
		}
		if err := schema.Validate(args); err != nil {
			return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
		}

		log.Ctx(ctx).Info().
			Str("tool", tool.Def.Name).
			Str("host", creds.Host).
			Msg("tool call")

		client := databricks.NewClient(creds, databricks.ClientOptions{
			HTTPClient: &http.Client{Timeout: requestTimeout()},
		})

		result, err := tool.Handler(ctx, client, args)
		if err != nil {
			log.Ctx(ctx).Warn().Str("tool", tool.Def.Name).Err(err).Msg("tool call failed")
			return mcp.NewToolResultError(err.Error()), nil
		}

		encoded, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
		}
		return mcp.NewToolResultText(string(encoded)), nil
	}
}

// requestTimeout returns the configured outbound timeout, defaulting when no
// configuration is loaded.
func requestTimeout() time.Duration {
	if cfg := config.Config(); cfg != nil {
		return cfg.GetRequestTimeout()
	}
	return 2 * time.Minute
}
