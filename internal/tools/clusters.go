package tools

import (
	"context"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tansive/databricks-mcp/internal/databricks"
)

func init() {
	register("clusters", mcp.NewTool("list_clusters",
		mcp.WithDescription("List all-purpose and job clusters in the workspace."),
	), listClusters)

	register("clusters", mcp.NewTool("get_cluster",
		mcp.WithDescription("Get the configuration and state of a cluster."),
		mcp.WithString("cluster_id", mcp.Required(), mcp.Description("Cluster to inspect")),
	), getCluster)

	register("clusters", mcp.NewTool("start_cluster",
		mcp.WithDescription("Start a terminated cluster. Starting is asynchronous; poll get_cluster for the state."),
		mcp.WithString("cluster_id", mcp.Required(), mcp.Description("Cluster to start")),
	), clusterAction("/api/2.0/clusters/start", "start requested"))

	register("clusters", mcp.NewTool("restart_cluster",
		mcp.WithDescription("Restart a running cluster."),
		mcp.WithString("cluster_id", mcp.Required(), mcp.Description("Cluster to restart")),
	), clusterAction("/api/2.0/clusters/restart", "restart requested"))

	register("clusters", mcp.NewTool("terminate_cluster",
		mcp.WithDescription("Terminate a running cluster. The cluster configuration is retained and the cluster can be started again later."),
		mcp.WithString("cluster_id", mcp.Required(), mcp.Description("Cluster to terminate")),
	), clusterAction("/api/2.0/clusters/delete", "terminate requested"))
}

type clusterIDArgs struct {
	ClusterID string `json:"cluster_id"`
}

func listClusters(ctx context.Context, c databricks.Caller, _ map[string]any) (any, error) {
	raw, err := c.Get(ctx, "/api/2.0/clusters/list")
	if err != nil {
		return nil, err
	}
	return unwrapArray(raw, "clusters")
}

func getCluster(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in clusterIDArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.ClusterID == "" {
		return nil, ErrInvalidArguments.Msg("cluster_id is required")
	}
	return c.Get(ctx, "/api/2.0/clusters/get?cluster_id="+url.QueryEscape(in.ClusterID))
}

// clusterAction builds a handler for the POST lifecycle endpoints, which all
// take a cluster_id and usually reply with an empty body.
func clusterAction(path, status string) HandlerFunc {
	return func(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
		var in clusterIDArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		if in.ClusterID == "" {
			return nil, ErrInvalidArguments.Msg("cluster_id is required")
		}
		raw, err := c.Post(ctx, path, map[string]any{"cluster_id": in.ClusterID})
		if err != nil {
			return nil, err
		}
		return resultOrAck(raw, status), nil
	}
}
