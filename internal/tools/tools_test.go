package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tansive/databricks-mcp/internal/databricks"
)

// stubCaller records descriptors and replays canned responses, standing in
// for the real pipeline.
type stubCaller struct {
	last     databricks.Descriptor
	response json.RawMessage
	err      error
	calls    int
}

func (s *stubCaller) Do(_ context.Context, d databricks.Descriptor) (json.RawMessage, error) {
	s.calls++
	s.last = d
	return s.response, s.err
}

func (s *stubCaller) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return s.Do(ctx, databricks.Descriptor{Method: http.MethodGet, Path: path})
}

func (s *stubCaller) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return s.Do(ctx, databricks.Descriptor{Method: http.MethodPost, Path: path, Body: body})
}

func (s *stubCaller) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return s.Do(ctx, databricks.Descriptor{Method: http.MethodPut, Path: path, Body: body})
}

func (s *stubCaller) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return s.Do(ctx, databricks.Descriptor{Method: http.MethodPatch, Path: path, Body: body})
}

func (s *stubCaller) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return s.Do(ctx, databricks.Descriptor{Method: http.MethodDelete, Path: path})
}

var _ databricks.Caller = (*stubCaller)(nil)

func findTool(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range Registry() {
		if tool.Def.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %s not registered", name)
	return Tool{}
}

func TestRegistryStableAndGrouped(t *testing.T) {
	reg := Registry()
	require.NotEmpty(t, reg)

	// Tools appear sorted by category then name, with no duplicates.
	seen := map[string]bool{}
	for i := 1; i < len(reg); i++ {
		prev, cur := reg[i-1], reg[i]
		if prev.Category == cur.Category {
			assert.Less(t, prev.Def.Name, cur.Def.Name)
		} else {
			assert.Less(t, prev.Category, cur.Category)
		}
	}
	for _, tool := range reg {
		assert.False(t, seen[tool.Def.Name], "duplicate tool %s", tool.Def.Name)
		seen[tool.Def.Name] = true
		assert.NotEmpty(t, tool.Def.Description)
		assert.NotNil(t, tool.Handler)
	}

	cats := Categories()
	for _, want := range []string{"sql", "jobs", "clusters", "workspace", "catalog", "secrets", "dbfs"} {
		assert.Contains(t, cats, want)
	}
}

func TestExecuteStatementDefaults(t *testing.T) {
	stub := &stubCaller{response: json.RawMessage(`{"statement_id":"s1"}`)}
	ctx := databricks.ContextWithCredentials(context.Background(), databricks.Credentials{
		Host: "https://example.com", Token: "tok", WarehouseID: "wh-7",
	})

	tool := findTool(t, "execute_statement")
	res, err := tool.Handler(ctx, stub, map[string]any{"statement": "SELECT 1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"statement_id":"s1"}`, string(res.(json.RawMessage)))

	assert.Equal(t, http.MethodPost, stub.last.Method)
	assert.Equal(t, "/api/2.0/sql/statements", stub.last.Path)
	body := stub.last.Body.(map[string]any)
	assert.Equal(t, "SELECT 1", body["statement"])
	assert.Equal(t, "wh-7", body["warehouse_id"])
	assert.Equal(t, "30s", body["wait_timeout"])
	assert.Equal(t, "INLINE", body["disposition"])
	assert.NotContains(t, body, "catalog")
	assert.NotContains(t, body, "row_limit")
}

func TestExecuteStatementExplicitWarehouseWins(t *testing.T) {
	stub := &stubCaller{response: json.RawMessage(`{}`)}
	ctx := databricks.ContextWithCredentials(context.Background(), databricks.Credentials{
		Host: "https://example.com", Token: "tok", WarehouseID: "wh-7",
	})

	tool := findTool(t, "execute_statement")
	_, err := tool.Handler(ctx, stub, map[string]any{
		"statement":    "SELECT 1",
		"warehouse_id": "wh-explicit",
	})
	require.NoError(t, err)
	body := stub.last.Body.(map[string]any)
	assert.Equal(t, "wh-explicit", body["warehouse_id"])
}

func TestExecuteStatementMissingWarehouse(t *testing.T) {
	stub := &stubCaller{}
	tool := findTool(t, "execute_statement")
	_, err := tool.Handler(context.Background(), stub, map[string]any{"statement": "SELECT 1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArguments)
	assert.Contains(t, err.Error(), "warehouse_id")
	assert.Zero(t, stub.calls)
}

func TestExecuteStatementMissingStatement(t *testing.T) {
	stub := &stubCaller{}
	tool := findTool(t, "execute_statement")
	_, err := tool.Handler(context.Background(), stub, map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArguments)
	assert.Zero(t, stub.calls)
}

func TestGetStatementStatusEscapesID(t *testing.T) {
	stub := &stubCaller{response: json.RawMessage(`{"status":{"state":"PENDING"}}`)}
	tool := findTool(t, "get_statement_status")
	_, err := tool.Handler(context.Background(), stub, map[string]any{"statement_id": "id with space"})
	require.NoError(t, err)
	assert.Equal(t, "/api/2.0/sql/statements/id%20with%20space", stub.last.Path)
}

func TestCancelStatementAcksEmptyBody(t *testing.T) {
	stub := &stubCaller{}
	tool := findTool(t, "cancel_statement")
	res, err := tool.Handler(context.Background(), stub, map[string]any{"statement_id": "s1"})
	require.NoError(t, err)
	assert.Equal(t, ack{Status: "cancel requested"}, res)
	assert.Equal(t, "/api/2.0/sql/statements/s1/cancel", stub.last.Path)
	assert.Nil(t, stub.last.Body)
}

func TestListJobsUnwrapsEnvelope(t *testing.T) {
	stub := &stubCaller{response: json.RawMessage(`{"jobs":[{"job_id":1},{"job_id":2},{"job_id":3}]}`)}
	tool := findTool(t, "list_jobs")
	res, err := tool.Handler(context.Background(), stub, map[string]any{})
	require.NoError(t, err)
	items := res.([]any)
	require.Len(t, items, 3)
	assert.Equal(t, float64(1), items[0].(map[string]any)["job_id"])
	assert.Contains(t, stub.last.Path, "limit=20")
}

func TestListJobsEmptyEnvelope(t *testing.T) {
	stub := &stubCaller{response: json.RawMessage(`{}`)}
	tool := findTool(t, "list_jobs")
	res, err := tool.Handler(context.Background(), stub, map[string]any{})
	require.NoError(t, err)
	items := res.([]any)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestListJobsPropagatesPipelineError(t *testing.T) {
	stub := &stubCaller{err: &databricks.RateLimitError{RetryAfterSeconds: 30}}
	tool := findTool(t, "list_jobs")
	_, err := tool.Handler(context.Background(), stub, map[string]any{})
	var rlErr *databricks.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 30, rlErr.RetryAfterSeconds)
}

func TestRunJobCoercesNumericID(t *testing.T) {
	stub := &stubCaller{response: json.RawMessage(`{"run_id":99}`)}
	tool := findTool(t, "run_job")
	// JSON numbers arrive as float64 from the dispatcher.
	_, err := tool.Handler(context.Background(), stub, map[string]any{
		"job_id":         float64(1234),
		"job_parameters": map[string]any{"env": "prod"},
	})
	require.NoError(t, err)
	body := stub.last.Body.(map[string]any)
	assert.Equal(t, int64(1234), body["job_id"])
	assert.Equal(t, map[string]any{"env": "prod"}, body["job_parameters"])
}

func TestClusterActionsPostClusterID(t *testing.T) {
	cases := map[string]string{
		"start_cluster":     "/api/2.0/clusters/start",
		"restart_cluster":   "/api/2.0/clusters/restart",
		"terminate_cluster": "/api/2.0/clusters/delete",
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			stub := &stubCaller{}
			tool := findTool(t, name)
			res, err := tool.Handler(context.Background(), stub, map[string]any{"cluster_id": "c-1"})
			require.NoError(t, err)
			assert.Equal(t, path, stub.last.Path)
			assert.Equal(t, map[string]any{"cluster_id": "c-1"}, stub.last.Body)
			assert.IsType(t, ack{}, res)
		})
	}
}

func TestListWorkspaceRequiresPath(t *testing.T) {
	stub := &stubCaller{}
	tool := findTool(t, "list_workspace")
	_, err := tool.Handler(context.Background(), stub, map[string]any{})
	assert.ErrorIs(t, err, ErrInvalidArguments)
	assert.Zero(t, stub.calls)
}

func TestExportNotebookDefaultsFormat(t *testing.T) {
	stub := &stubCaller{response: json.RawMessage(`{"content":"cHJpbnQoMSk="}`)}
	tool := findTool(t, "export_notebook")
	_, err := tool.Handler(context.Background(), stub, map[string]any{"path": "/Users/a@b.com/nb"})
	require.NoError(t, err)
	assert.Contains(t, stub.last.Path, "format=SOURCE")
	assert.Contains(t, stub.last.Path, "path=%2FUsers%2Fa%40b.com%2Fnb")
}

func TestListTablesBuildsQuery(t *testing.T) {
	stub := &stubCaller{response: json.RawMessage(`{"tables":[{"name":"t"}]}`)}
	tool := findTool(t, "list_tables")
	res, err := tool.Handler(context.Background(), stub, map[string]any{
		"catalog_name": "main",
		"schema_name":  "default",
	})
	require.NoError(t, err)
	assert.Contains(t, stub.last.Path, "catalog_name=main")
	assert.Contains(t, stub.last.Path, "schema_name=default")
	assert.Len(t, res.([]any), 1)
}

func TestListSecretsUnwraps(t *testing.T) {
	stub := &stubCaller{response: json.RawMessage(`{"secrets":[{"key":"a"},{"key":"b"}]}`)}
	tool := findTool(t, "list_secrets")
	res, err := tool.Handler(context.Background(), stub, map[string]any{"scope": "prod"})
	require.NoError(t, err)
	assert.Len(t, res.([]any), 2)
	assert.Equal(t, "/api/2.0/secrets/list?scope=prod", stub.last.Path)
}

func TestListDBFSNilResponseYieldsEmptySlice(t *testing.T) {
	stub := &stubCaller{}
	tool := findTool(t, "list_dbfs")
	res, err := tool.Handler(context.Background(), stub, map[string]any{"path": "/mnt/data"})
	require.NoError(t, err)
	items := res.([]any)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
