package tools

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tansive/databricks-mcp/internal/databricks"
)

// defaultListLimit bounds list operations when the caller does not page
// explicitly.
const defaultListLimit = 20

func init() {
	register("jobs", mcp.NewTool("list_jobs",
		mcp.WithDescription("List jobs defined in the workspace."),
		mcp.WithString("name", mcp.Description("Filter to jobs whose name matches exactly")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of jobs to return, default 20")),
	), listJobs)

	register("jobs", mcp.NewTool("run_job",
		mcp.WithDescription("Trigger a run of an existing job. Returns the run_id to poll with get_job_run."),
		mcp.WithNumber("job_id", mcp.Required(), mcp.Description("Job to run")),
		mcp.WithObject("job_parameters", mcp.Description("Key-value parameters passed to the run; opaque to the gateway")),
	), runJob)

	register("jobs", mcp.NewTool("get_job_run",
		mcp.WithDescription("Get the status and metadata of a single job run."),
		mcp.WithNumber("run_id", mcp.Required(), mcp.Description("Run to inspect")),
	), getJobRun)

	register("jobs", mcp.NewTool("list_job_runs",
		mcp.WithDescription("List recent runs, optionally limited to one job."),
		mcp.WithNumber("job_id", mcp.Description("Only runs of this job")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of runs to return, default 20")),
	), listJobRuns)

	register("jobs", mcp.NewTool("cancel_job_run",
		mcp.WithDescription("Request cancellation of an active job run."),
		mcp.WithNumber("run_id", mcp.Required(), mcp.Description("Run to cancel")),
	), cancelJobRun)
}

type listJobsArgs struct {
	Name  string `json:"name"`
	Limit int64  `json:"limit"`
}

func listJobs(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in listJobsArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Limit <= 0 {
		in.Limit = defaultListLimit
	}
	q := url.Values{}
	q.Set("limit", strconv.FormatInt(in.Limit, 10))
	if in.Name != "" {
		q.Set("name", in.Name)
	}
	raw, err := c.Get(ctx, "/api/2.1/jobs/list?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return unwrapArray(raw, "jobs")
}

type runJobArgs struct {
	JobID         int64          `json:"job_id"`
	JobParameters map[string]any `json:"job_parameters"`
}

func runJob(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in runJobArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.JobID == 0 {
		return nil, ErrInvalidArguments.Msg("job_id is required")
	}
	body := map[string]any{
		"job_id": in.JobID,
	}
	if len(in.JobParameters) > 0 {
		body["job_parameters"] = in.JobParameters
	}
	return c.Post(ctx, "/api/2.1/jobs/run-now", body)
}

type runIDArgs struct {
	RunID int64 `json:"run_id"`
}

func getJobRun(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in runIDArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.RunID == 0 {
		return nil, ErrInvalidArguments.Msg("run_id is required")
	}
	return c.Get(ctx, "/api/2.1/jobs/runs/get?run_id="+strconv.FormatInt(in.RunID, 10))
}

type listJobRunsArgs struct {
	JobID int64 `json:"job_id"`
	Limit int64 `json:"limit"`
}

func listJobRuns(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in listJobRunsArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Limit <= 0 {
		in.Limit = defaultListLimit
	}
	q := url.Values{}
	q.Set("limit", strconv.FormatInt(in.Limit, 10))
	if in.JobID != 0 {
		q.Set("job_id", strconv.FormatInt(in.JobID, 10))
	}
	raw, err := c.Get(ctx, "/api/2.1/jobs/runs/list?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return unwrapArray(raw, "runs")
}

func cancelJobRun(ctx context.Context, c databricks.Caller, args map[string]any) (any, error) {
	var in runIDArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.RunID == 0 {
		return nil, ErrInvalidArguments.Msg("run_id is required")
	}
	raw, err := c.Post(ctx, "/api/2.1/jobs/runs/cancel", map[string]any{"run_id": in.RunID})
	if err != nil {
		return nil, err
	}
	return resultOrAck(raw, "cancel requested"), nil
}
