package jobserver

import (
	"context"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerProfileUpdate(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "profile_update",
		Description: "Update the stored user profile used for job match scoring. Supplied fields replace the current value wholesale (never merged); omitted fields are kept. Returns the resulting profile.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input engine.ProfileUpdateInput) (*mcp.CallToolResult, *engine.ProfileResult, error) {
		profile, err := deps.Profile.Update(input)
		if err != nil {
			return nil, nil, err
		}
		return nil, &engine.ProfileResult{
			Profile: profile,
			Message: "Profile updated successfully",
		}, nil
	})
}

func registerProfileGet(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "profile_get",
		Description: "Return the stored user profile: skills, experience, qualifications, and minimum salary.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, *engine.ProfileResult, error) {
		return nil, &engine.ProfileResult{Profile: deps.Profile.Get()}, nil
	})
}
