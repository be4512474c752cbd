package jobserver

import (
	"context"

	"github.com/anatolykoptev/go_jobagent/internal/engine/jobs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerApplicationTemplates(server *mcp.Server, _ Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "application_templates",
		Description: "Generate application materials for one posting: detected benefits, a CV customization template, a cover letter skeleton, interview prep questions, and an application strategy. Requires job_title, company, job_description, and requirements.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, input jobs.ApplicationTemplatesInput) (*mcp.CallToolResult, *jobs.ApplicationTemplates, error) {
		templates, err := jobs.BuildApplicationTemplates(input)
		if err != nil {
			return nil, nil, err
		}
		return nil, templates, nil
	})
}
