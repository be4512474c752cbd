package jobserver

import (
	"context"

	"github.com/anatolykoptev/go_jobagent/internal/monitor"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerHealthStatus(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "health_status",
		Description: "Run the health checks now and return the summary: tracker database status, external API status, overall status, and operational counters.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, *monitor.HealthSummary, error) {
		return nil, deps.Health.Summary(ctx), nil
	})
}
