package tools

import (
	"context"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tansive/databricks-mcp/internal/databricks"
)

// Defaults applied by the SQL statement façade when the caller omits them.
const (
	defaultWaitTimeout = "30s"
	defaultDisposition = "INLINE"
)

func init() {
	register("sql", mcp.NewTool("execute_statement",
		mcp.WithDescription("Execute a SQL statement on a Databricks SQL warehouse and return the result. Long-running statements return a statement_id to poll with get_statement_status."),
		mcp.WithString("statement", mcp.Required(), mcp.Description("SQL text to execute")),
		mcp.WithString("warehouse_id", mcp.Description("SQL warehouse to run on; defaults to the "+databricks.HeaderWarehouseID+" header")),
		mcp.WithString("catalog", mcp.Description("Catalog to resolve unqualified names against")),
		mcp.WithString("schema", mcp.Description("Schema to resolve unqualified names against")),
		mcp.WithString("wait_timeout", mcp.Description("How long to wait for the statement to finish, e.g. \"30s\"; \"0s\" returns immediately")),
		mcp.WithString("disposition", mcp.Description("Result disposition, INLINE or EXTERNAL_LINKS; passed through to the platform")),
		mcp.WithNumber("row_limit", mcp.Description("Maximum number of result rows")),
	), executeStatement)

	register("sql", mcp.NewTool("get_statement_status",
		mcp.WithDescription("Fetch the execution status and, when available, the result of a previously submitted SQL statement."),
		mcp.WithString("statement_id", mcp.Required(), mcp.Description("Statement ID returned by execute_statement")),
	), getStatementStatus)

	register("sql", mcp.NewTool("cancel_statement",
		mcp.WithDescription("Request cancellation of a running SQL statement. Cancellation happens on the platform side and is not guaranteed to be immediate."),
		mcp.WithString("statement_id", mcp.Required(), mcp.Description("Statement ID returned by execute_statement")),
	), cancelStatement)

	register("sql", mcp.NewTool("list_warehouses",
		mcp.WithDescription("List the SQL warehouses in the workspace."),
	), listWarehouses)
}

type executeStatementArgs struct {
	Statement   string `json:"statement"`
	WarehouseID string `json:"warehouse_id"`
	Catalog     string `json:"catalog"`
	Schema      string `json:"schema"`
	WaitTimeout string `json:"wait_timeout"`
	Disposition string `json:"disposition"`
	RowLimit    int64  `json:"row_limit"`
}

func executeStatement(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in executeStatementArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Statement == "" {
		return nil, ErrInvalidArguments.Msg("statement is required")
	}
	if in.WarehouseID == "" {
		if creds, ok := databricks.CredentialsFromContext(ctx); ok {
			in.WarehouseID = creds.WarehouseID
		}
	}
	if in.WarehouseID == "" {
		return nil, ErrInvalidArguments.Msg("warehouse_id is required: pass it as an argument or set the " + databricks.HeaderWarehouseID + " header")
	}
	if in.WaitTimeout == "" {
		in.WaitTimeout = defaultWaitTimeout
	}
	if in.Disposition == "" {
		in.Disposition = defaultDisposition
	}

	body := map[string]any{
		"statement":    in.Statement,
		"warehouse_id": in.WarehouseID,
		"wait_timeout": in.WaitTimeout,
		"disposition":  in.Disposition,
	}
	if in.Catalog != "" {
		body["catalog"] = in.Catalog
	}
	if in.Schema != "" {
		body["schema"] = in.Schema
	}
	if in.RowLimit > 0 {
		body["row_limit"] = in.RowLimit
	}
	return c.Post(ctx, "/api/2.0/sql/statements", body)
}

type statementIDArgs struct {
	StatementID string `json:"statement_id"`
}

func getStatementStatus(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in statementIDArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.StatementID == "" {
		return nil, ErrInvalidArguments.Msg("statement_id is required")
	}
	return c.Get(ctx, "/api/2.0/sql/statements/"+url.PathEscape(in.StatementID))
}

func cancelStatement(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in statementIDArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.StatementID == "" {
		return nil, ErrInvalidArguments.Msg("statement_id is required")
	}
	raw, err := c.Post(ctx, "/api/2.0/sql/statements/"+url.PathEscape(in.StatementID)+"/cancel", nil)
	if err != nil {
		return nil, err
	}
	return resultOrAck(raw, "cancel requested"), nil
}

func listWarehouses(ctx context.Context, c databricks.Caller, _ map[string]any) (any, error) {
	raw, err := c.Get(ctx, "/api/2.0/sql/warehouses")
	if err != nil {
		return nil, err
	}
	return unwrapArray(raw, "warehouses")
}
