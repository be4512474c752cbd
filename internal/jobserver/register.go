// Package jobserver registers the go_jobagent MCP tools: job search and
// ranking, profile management, application tracking, templates, market
// analysis, and health.
package jobserver

import (
	"github.com/anatolykoptev/go_jobagent/internal/engine/jobs"
	"github.com/anatolykoptev/go_jobagent/internal/monitor"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Deps carries the stores the tool handlers operate on. All fields are
// required except Health, which disables the health_status tool when nil.
type Deps struct {
	Profile *jobs.ProfileStore
	Tracker jobs.TrackerStore
	Health  *monitor.Checker
}

// RegisterTools registers all go_jobagent tools on the given MCP server.
func RegisterTools(server *mcp.Server, deps Deps) {
	registerFintechJobSearch(server, deps)
	registerProfileUpdate(server, deps)
	registerProfileGet(server, deps)
	registerJobSearchAnalysis(server, deps)
	registerApplicationTrack(server, deps)
	registerApplicationStatus(server, deps)
	registerApplicationTemplates(server, deps)
	registerJobMarketAnalysis(server, deps)
	if deps.Health != nil {
		registerHealthStatus(server, deps)
	}
}
