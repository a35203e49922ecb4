package tools

import (
	"context"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tansive/databricks-mcp/internal/databricks"
)

func init() {
	register("catalog", mcp.NewTool("list_catalogs",
		mcp.WithDescription("List Unity Catalog catalogs visible to the caller."),
	), listCatalogs)

	register("catalog", mcp.NewTool("list_schemas",
		mcp.WithDescription("List schemas in a catalog."),
		mcp.WithString("catalog_name", mcp.Required(), mcp.Description("Parent catalog")),
	), listSchemas)

	register("catalog", mcp.NewTool("list_tables",
		mcp.WithDescription("List tables in a schema."),
		mcp.WithString("catalog_name", mcp.Required(), mcp.Description("Parent catalog")),
		mcp.WithString("schema_name", mcp.Required(), mcp.Description("Parent schema")),
	), listTables)

	register("catalog", mcp.NewTool("get_table",
		mcp.WithDescription("Get a table's metadata, including its column schema."),
		mcp.WithString("full_name", mcp.Required(), mcp.Description("Three-part table name, catalog.schema.table")),
	), getTable)
}

func listCatalogs(ctx context.Context, c databricks.Caller, _ map[string]any) (any, error) {
	raw, err := c.Get(ctx, "/api/2.1/unity-catalog/catalogs")
	if err != nil {
		return nil, err
	}
	return unwrapArray(raw, "catalogs")
}

type listSchemasArgs struct {
	CatalogName string `json:"catalog_name"`
}

func listSchemas(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in listSchemasArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.CatalogName == "" {
		return nil, ErrInvalidArguments.Msg("catalog_name is required")
	}
	raw, err := c.Get(ctx, "/api/2.1/unity-catalog/schemas?catalog_name="+url.QueryEscape(in.CatalogName))
	if err != nil {
		return nil, err
	}
	return unwrapArray(raw, "schemas")
}

type listTablesArgs struct {
	CatalogName string `json:"catalog_name"`
	SchemaName  string `json:"schema_name"`
}

func listTables(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in listTablesArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.CatalogName == "" {
		return nil, ErrInvalidArguments.Msg("catalog_name is required")
	}
	if in.SchemaName == "" {
		return nil, ErrInvalidArguments.Msg("schema_name is required")
	}
	q := url.Values{}
	q.Set("catalog_name", in.CatalogName)
	q.Set("schema_name", in.SchemaName)
	raw, err := c.Get(ctx, "/api/2.1/unity-catalog/tables?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return unwrapArray(raw, "tables")
}

type getTableArgs struct {
	FullName string `json:"full_name"`
}

func getTable(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in getTableArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.FullName == "" {
		return nil, ErrInvalidArguments.Msg("full_name is required")
	}
	return c.Get(ctx, "/api/2.1/unity-catalog/tables/"+url.PathEscape(in.FullName))
}
