// Package tools enumerates the gateway's operations. Each tool binds an MCP
// definition to a handler that builds one request descriptor, sends it
// through the databricks request pipeline, and reshapes the decoded JSON.
// Handlers never retry, cache, or hold state across calls.
package tools

import (
	"context"
	"net/http"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tansive/databricks-mcp/internal/common/apperrors"
	"github.com/tansive/databricks-mcp/internal/databricks"
)

// Package-level error variables for tool argument handling.
var (
	// ErrToolError is the base error for the package.
	ErrToolError apperrors.Error = apperrors.New("tool error").SetStatusCode(http.StatusInternalServerError)

	// ErrInvalidArguments is returned when a tool call's arguments are
	// missing or malformed.
	ErrInvalidArguments apperrors.Error = ErrToolError.New("invalid arguments").SetStatusCode(http.StatusBadRequest)
)

// HandlerFunc executes one operation against the workspace identified by the
// call's credentials.
type HandlerFunc func(ctx context.Context, c databricks.Caller, args map[string]any) (any, error)

// Tool binds an MCP tool definition to its handler.
type Tool struct {
	Category string
	Def      mcp.Tool
	Handler  HandlerFunc
}

var registry []Tool

func register(category string, def mcp.Tool, handler HandlerFunc) {
	registry = append(registry, Tool{Category: category, Def: def, Handler: handler})
}

// Registry returns all registered tools ordered by category then name.
func Registry() []Tool {
	out := make([]Tool, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Def.Name < out[j].Def.Name
	})
	return out
}

// Categories returns operation names grouped by category, each group sorted
// by name.
func Categories() map[string][]string {
	out := make(map[string][]string)
	for _, t := range Registry() {
		out[t.Category] = append(out[t.Category], t.Def.Name)
	}
	return out
}
