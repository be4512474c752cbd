package jobserver

import (
	"context"
	"errors"

	"github.com/anatolykoptev/go_jobagent/internal/engine/jobs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerApplicationTrack(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "application_track",
		Description: "Record a job application in the tracker. Re-tracking the same job URL updates the stored job and adds a new application row. Status options: applied (default), interview_scheduled, interviewed, offer, rejected. Returns the follow-up timeline and suggested next actions.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input jobs.ApplicationTrackInput) (*mcp.CallToolResult, *jobs.ApplicationTrackResult, error) {
		if input.JobURL == "" || input.Company == "" || input.Position == "" || input.AppliedDate == "" {
			return nil, nil, errors.New("job_url, company, position and applied_date are required")
		}
		result, err := deps.Tracker.Track(ctx, input)
		if err != nil {
			return nil, nil, err
		}
		return nil, result, nil
	})
}

func registerApplicationStatus(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "application_status",
		Description: "Summarize the application pipeline: per-status counts, applications by company, overdue follow-ups, recent activity, response and interview rates, and recommendations.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, *jobs.ApplicationStatusSummary, error) {
		summary, err := deps.Tracker.StatusSummary(ctx)
		if err != nil {
			return nil, nil, err
		}
		return nil, summary, nil
	})
}
