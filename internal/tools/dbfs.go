package tools

import (
	"context"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tansive/databricks-mcp/internal/databricks"
)

func init() {
	register("dbfs", mcp.NewTool("list_dbfs",
		mcp.WithDescription("List files and directories at a DBFS path."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Absolute DBFS path, e.g. /mnt/data")),
	), listDBFS)
}

type listDBFSArgs struct {
	Path string `json:"path"`
}

func listDBFS(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in listDBFSArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Path == "" {
		return nil, ErrInvalidArguments.Msg("path is required")
	}
	raw, err := c.Get(ctx, "/api/2.0/dbfs/list?path="+url.QueryEscape(in.Path))
	if err != nil {
		return nil, err
	}
	return unwrapArray(raw, "files")
}
