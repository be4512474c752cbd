package jobserver

import (
	"context"

	"github.com/anatolykoptev/go_jobagent/internal/engine/jobs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerJobMarketAnalysis(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_market_analysis",
		Description: "Analyze the local job market from tracked search and application history: popular searches, top hiring companies, application outcomes over a timeframe, plus salary-band and remote-work insights and a search strategy.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input jobs.MarketAnalysisInput) (*mcp.CallToolResult, *jobs.MarketAnalysis, error) {
		return nil, jobs.AnalyzeMarket(ctx, deps.Tracker, input), nil
	})
}
