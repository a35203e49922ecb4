package tools

import (
	"context"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tansive/databricks-mcp/internal/databricks"
)

// defaultExportFormat is used when the caller does not specify a notebook
// export format. Format values are opaque pass-through parameters.
const defaultExportFormat = "SOURCE"

func init() {
	register("workspace", mcp.NewTool("list_workspace",
		mcp.WithDescription("List notebooks, directories, and files at a workspace path."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Absolute workspace path, e.g. /Users/someone@example.com")),
	), listWorkspace)

	register("workspace", mcp.NewTool("export_notebook",
		mcp.WithDescription("Export a notebook. The content is returned base64-encoded in the platform's envelope."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Absolute workspace path of the notebook")),
		mcp.WithString("format", mcp.Description("Export format such as SOURCE, HTML, JUPYTER, or DBC; default SOURCE")),
	), exportNotebook)
}

type workspacePathArgs struct {
	Path   string `json:"path"`
	Format string `json:"format"`
}

func listWorkspace(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in workspacePathArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Path == "" {
		return nil, ErrInvalidArguments.Msg("path is required")
	}
	raw, err := c.Get(ctx, "/api/2.0/workspace/list?path="+url.QueryEscape(in.Path))
	if err != nil {
		return nil, err
	}
	return unwrapArray(raw, "objects")
}

func exportNotebook(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in workspacePathArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Path == "" {
		return nil, ErrInvalidArguments.Msg("path is required")
	}
	if in.Format == "" {
		in.Format = defaultExportFormat
	}
	q := url.Values{}
	q.Set("path", in.Path)
	q.Set("format", in.Format)
	return c.Get(ctx, "/api/2.0/workspace/export?"+q.Encode())
}
